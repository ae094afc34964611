package repository

import (
	"elearn_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Find(studentID, courseID uint) (*model.StudentProgress, error) {
	var p model.StudentProgress
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&p).Error
	return &p, err
}

func (r *ProgressRepository) Create(p *model.StudentProgress) error {
	return r.DB.Create(p).Error
}

func (r *ProgressRepository) Save(p *model.StudentProgress) error {
	return r.DB.Save(p).Error
}

func (r *ProgressRepository) ListByStudent(studentID uint) ([]model.StudentProgress, error) {
	var list []model.StudentProgress
	err := r.DB.Preload("Course").
		Where("student_id = ?", studentID).
		Order("updated_at desc").
		Find(&list).Error
	return list, err
}

func (r *ProgressRepository) HasEnhanced(studentID, lessonID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.LessonEnhancement{}).
		Where("student_id = ? AND lesson_id = ?", studentID, lessonID).
		Count(&count).Error
	return count > 0, err
}

// MarkEnhanced is idempotent.
func (r *ProgressRepository) MarkEnhanced(studentID, lessonID uint) error {
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.LessonEnhancement{StudentID: studentID, LessonID: lessonID}).Error
}
