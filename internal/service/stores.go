package service

import (
	"context"
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"io"
	"time"
)

// The repository package satisfies these; tests substitute in-memory fakes.

type QuizStore interface {
	FindByID(id uint) (*model.Quiz, error)
	CreateForCourse(quiz *model.Quiz, courseID uint) error
	CreateForLesson(quiz *model.Quiz, lessonID uint) error
}

type CourseStore interface {
	FindByID(id uint) (*model.Course, error)
	FindByTitle(title string) (*model.Course, error)
	FindByFinalQuiz(quizID uint) (*model.Course, error)
	FindLessonByID(id uint) (*model.Lesson, error)
	FindLessonByQuiz(quizID uint) (*model.Lesson, error)
	ListByCategory(category string, limit int) ([]model.Course, error)
	List(filter repository.CourseFilter, page, limit int) ([]model.Course, int64, error)
	SetLessonMaterial(lessonID uint, key string) error
}

type AttemptStore interface {
	Create(attempt *model.QuizAttempt) error
	Latest(studentID, quizID uint) (*model.QuizAttempt, error)
	FindByID(id string) (*model.QuizAttempt, error)
	ListByStudent(studentID uint, page, limit int) ([]model.QuizAttempt, int64, error)
	ListByQuiz(quizID uint) ([]model.QuizAttempt, error)
}

type ProgressStore interface {
	Find(studentID, courseID uint) (*model.StudentProgress, error)
	Create(p *model.StudentProgress) error
	Save(p *model.StudentProgress) error
	ListByStudent(studentID uint) ([]model.StudentProgress, error)
	HasEnhanced(studentID, lessonID uint) (bool, error)
	MarkEnhanced(studentID, lessonID uint) error
}

type UserStore interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	UpdateLearningProfile(userID uint, profile model.LearningProfile) error
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type BlobUploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
}
