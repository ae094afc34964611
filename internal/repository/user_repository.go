package repository

import (
	"elearn_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

// UpdateLearningProfile overwrites every profile column, including blanks.
func (r *UserRepository) UpdateLearningProfile(userID uint, profile model.LearningProfile) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Select("age_group", "education_level", "programming_experience", "favorite_programming_topic",
			"learning_style", "weekly_availability", "preferred_course_duration", "learning_autonomy").
		Updates(&model.User{LearningProfile: profile}).
		Error
}
