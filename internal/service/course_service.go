package service

import (
	"context"
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"
	"errors"
	"fmt"
	"io"
	"path"

	"gorm.io/gorm"
)

type CourseService struct {
	Courses  CourseStore
	Progress ProgressStore
	Storage  BlobUploader
}

func NewCourseService(courses CourseStore, progress ProgressStore, storage BlobUploader) *CourseService {
	return &CourseService{Courses: courses, Progress: progress, Storage: storage}
}

func (s *CourseService) ListCourses(filter repository.CourseFilter, page, limit int) (util.PageResponse, error) {
	courses, total, err := s.Courses.List(filter, page, limit)
	if err != nil {
		return util.PageResponse{}, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return util.NewPageResponse(courses, total, page, limit), nil
}

type CourseDetail struct {
	Course          *model.Course          `json:"course"`
	StudentProgress *model.StudentProgress `json:"studentProgress"`
}

func (s *CourseService) GetCourseDetail(courseID, studentID uint) (*CourseDetail, error) {
	course, err := s.Courses.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{Course: course}
	progress, err := s.Progress.Find(studentID, courseID)
	switch {
	case err == nil:
		detail.StudentProgress = progress
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	return detail, nil
}

// Enroll creates the learner's progress row for the course.
func (s *CourseService) Enroll(studentID, courseID uint) (*model.StudentProgress, error) {
	if _, err := s.Courses.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	_, err := s.Progress.Find(studentID, courseID)
	if err == nil {
		return nil, util.ErrAlreadyEnrolled
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress := &model.StudentProgress{
		StudentID:        studentID,
		CourseID:         courseID,
		Lesson:           1,
		CompletionStatus: model.StatusInProgress,
	}
	if err := s.Progress.Create(progress); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("enroll: %w", err)
	}
	return progress, nil
}

type UserCourses struct {
	InProgress []model.Course `json:"in-progress"`
	Completed  []model.Course `json:"completed"`
	Failed     []model.Course `json:"failed"`
}

// GetUserCourses groups the learner's courses by completion status.
func (s *CourseService) GetUserCourses(studentID uint) (*UserCourses, error) {
	list, err := s.Progress.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}

	out := &UserCourses{
		InProgress: []model.Course{},
		Completed:  []model.Course{},
		Failed:     []model.Course{},
	}
	for _, p := range list {
		if p.Course == nil {
			continue
		}
		switch p.CompletionStatus {
		case model.StatusInProgress:
			out.InProgress = append(out.InProgress, *p.Course)
		case model.StatusCompleted:
			out.Completed = append(out.Completed, *p.Course)
		case model.StatusFailed:
			out.Failed = append(out.Failed, *p.Course)
		}
	}
	return out, nil
}

// UploadMaterial stores the text a lesson is enhanced from and points the lesson at it.
func (s *CourseService) UploadMaterial(ctx context.Context, userID uint, role model.UserRole, lessonID uint, filename string, body io.Reader, size int64) (*model.Lesson, error) {
	lesson, err := s.Courses.FindLessonByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	course, err := s.Courses.FindByID(lesson.CourseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if role != model.Admin && course.TeacherID != userID {
		return nil, util.ErrPermissionDenied
	}

	body, mimeType, err := util.SniffMimeType(body, util.MaterialTypes)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("lessons/%d/%s%s", lessonID, model.GenerateUUID(), path.Ext(filename))
	if _, err := s.Storage.Upload(ctx, key, body, size, mimeType); err != nil {
		return nil, fmt.Errorf("upload material: %w", err)
	}
	if err := s.Courses.SetLessonMaterial(lessonID, key); err != nil {
		return nil, err
	}
	lesson.MaterialKey = key
	return lesson, nil
}
