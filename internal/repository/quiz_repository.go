package repository

import (
	"elearn_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc, id asc")
	}).First(&quiz, id).Error
	return &quiz, err
}

// CreateForCourse stores the quiz with its questions and makes it the course's final quiz.
func (r *QuizRepository) CreateForCourse(quiz *model.Quiz, courseID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Course{}).Where("id = ?", courseID).Update("final_quiz_id", quiz.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CreateForLesson stores the quiz with its questions and attaches it to the lesson.
func (r *QuizRepository) CreateForLesson(quiz *model.Quiz, lessonID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Lesson{}).Where("id = ?", lessonID).Update("quiz_id", quiz.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
