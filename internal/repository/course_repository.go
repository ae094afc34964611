package repository

import (
	"elearn_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func orderedLessons(db *gorm.DB) *gorm.DB {
	return db.Order("`order` asc, id asc")
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Lessons", orderedLessons).First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindByTitle(title string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("title = ?", title).First(&course).Error
	return &course, err
}

// FindByFinalQuiz returns the course whose final quiz is quizID.
func (r *CourseRepository) FindByFinalQuiz(quizID uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Lessons", orderedLessons).Where("final_quiz_id = ?", quizID).First(&course).Error
	return &course, err
}

func (r *CourseRepository) FindLessonByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

// FindLessonByQuiz returns the lesson that owns quizID.
func (r *CourseRepository) FindLessonByQuiz(quizID uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Where("quiz_id = ?", quizID).First(&lesson).Error
	return &lesson, err
}

func (r *CourseRepository) ListByCategory(category string, limit int) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.Model(&model.Course{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("created_at desc").Limit(limit).Find(&courses).Error
	return courses, err
}

type CourseFilter struct {
	Title     string
	Category  string
	Level     string
	TeacherID uint
}

func (r *CourseRepository) List(filter CourseFilter, page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64
	query := r.DB.Model(&model.Course{})
	if filter.Title != "" {
		query = query.Where("title LIKE ?", "%"+filter.Title+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.TeacherID > 0 {
		query = query.Where("teacher_id = ?", filter.TeacherID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) SetLessonMaterial(lessonID uint, key string) error {
	return r.DB.Model(&model.Lesson{}).Where("id = ?", lessonID).Update("material_key", key).Error
}
