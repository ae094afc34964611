package service

import (
	"elearn_backend/internal/model"
	"elearn_backend/internal/util"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type QuestionRequest struct {
	QuestionText    string   `json:"questionText"`
	Options         []string `json:"options"`
	CorrectAnswers  []string `json:"correctAnswers"`
	Explanation     string   `json:"explanation"`
	DifficultyLevel int      `json:"difficultyLevel"`
}

// CreateQuizRequest attaches a quiz to a course (IsCourse, final quiz) or to a lesson.
type CreateQuizRequest struct {
	IsCourse     bool              `json:"isCourse"`
	TargetID     uint              `json:"targetId" binding:"required"`
	PassingScore float64           `json:"passingScore"`
	Questions    []QuestionRequest `json:"questions"`
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", util.ErrInvalidQuiz, fmt.Sprintf(format, args...))
}

func (r CreateQuizRequest) Validate() error {
	if r.PassingScore < 0 || r.PassingScore > 100 {
		return invalid("passing score must be between 0 and 100")
	}
	if len(r.Questions) == 0 {
		return invalid("a quiz needs at least one question")
	}
	for i, q := range r.Questions {
		n := i + 1
		if strings.TrimSpace(q.QuestionText) == "" {
			return invalid("question %d has no text", n)
		}
		if len(q.Options) < 2 {
			return invalid("question %d needs at least two options", n)
		}
		// Options are compared the way answers are graded.
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			f := fold(o)
			if f == "" {
				return invalid("question %d has an empty option", n)
			}
			if seen[f] {
				return invalid("question %d repeats option %q", n, o)
			}
			seen[f] = true
		}
		if len(q.CorrectAnswers) == 0 {
			return invalid("question %d has no correct answer", n)
		}
		picked := make(map[string]bool, len(q.CorrectAnswers))
		for _, a := range q.CorrectAnswers {
			f := fold(a)
			if !seen[f] {
				return invalid("question %d: correct answer %q is not an option", n, a)
			}
			if picked[f] {
				return invalid("question %d repeats correct answer %q", n, a)
			}
			picked[f] = true
		}
		if q.DifficultyLevel < 1 || q.DifficultyLevel > 5 {
			return invalid("question %d: difficulty must be between 1 and 5", n)
		}
	}
	return nil
}

func (r CreateQuizRequest) toModel() *model.Quiz {
	quiz := &model.Quiz{PassingScore: r.PassingScore}
	for i, q := range r.Questions {
		quiz.Questions = append(quiz.Questions, model.Question{
			Text:            q.QuestionText,
			Options:         model.StringList(q.Options),
			CorrectAnswers:  model.StringList(q.CorrectAnswers),
			Explanation:     q.Explanation,
			DifficultyLevel: q.DifficultyLevel,
			Order:           i + 1,
		})
	}
	return quiz
}

// CreateQuiz stores a new quiz for a course the caller teaches. Admins may target any course.
func (s *QuizService) CreateQuiz(userID uint, role model.UserRole, req CreateQuizRequest) (*model.Quiz, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var courseID uint
	if req.IsCourse {
		courseID = req.TargetID
	} else {
		lesson, err := s.Courses.FindLessonByID(req.TargetID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		if err != nil {
			return nil, err
		}
		courseID = lesson.CourseID
	}

	course, err := s.Courses.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if role != model.Admin && course.TeacherID != userID {
		return nil, util.ErrPermissionDenied
	}

	quiz := req.toModel()
	if req.IsCourse {
		err = s.Quizzes.CreateForCourse(quiz, req.TargetID)
	} else {
		err = s.Quizzes.CreateForLesson(quiz, req.TargetID)
	}
	if err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}
