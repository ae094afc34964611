package service

import (
	"elearn_backend/internal/config"
	"elearn_backend/internal/model"
	"elearn_backend/internal/util"
	"elearn_backend/pkg/logger"
	"elearn_backend/pkg/monitoring"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	Quizzes  QuizStore
	Courses  CourseStore
	Attempts AttemptStore
	Progress ProgressStore

	policy atomic.Value
	now    func() time.Time
}

func NewQuizService(quizzes QuizStore, courses CourseStore, attempts AttemptStore, progress ProgressStore, policy config.QuizPolicy) *QuizService {
	s := &QuizService{
		Quizzes:  quizzes,
		Courses:  courses,
		Attempts: attempts,
		Progress: progress,
		now:      time.Now,
	}
	s.policy.Store(policy)
	return s
}

// SetPolicy swaps the retry policy. Safe to call while requests are served.
func (s *QuizService) SetPolicy(p config.QuizPolicy) {
	s.policy.Store(p)
}

func (s *QuizService) Policy() config.QuizPolicy {
	return s.policy.Load().(config.QuizPolicy)
}

// quizOwner is where a quiz sits in a course. Lesson is nil for a course final quiz.
// Both are nil for a quiz that is not attached anywhere yet.
type quizOwner struct {
	Course *model.Course
	Lesson *model.Lesson
}

func (o quizOwner) courseID() *uint {
	if o.Course == nil {
		return nil
	}
	id := o.Course.ID
	return &id
}

func (s *QuizService) findOwner(quizID uint) (quizOwner, error) {
	course, err := s.Courses.FindByFinalQuiz(quizID)
	if err == nil {
		return quizOwner{Course: course}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return quizOwner{}, err
	}

	lesson, err := s.Courses.FindLessonByQuiz(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return quizOwner{}, nil
	}
	if err != nil {
		return quizOwner{}, err
	}
	course, err = s.Courses.FindByID(lesson.CourseID)
	if err != nil {
		return quizOwner{}, fmt.Errorf("load course of lesson %d: %w", lesson.ID, err)
	}
	return quizOwner{Course: course, Lesson: lesson}, nil
}

func (s *QuizService) loadQuiz(quizID uint) (*model.Quiz, error) {
	quiz, err := s.Quizzes.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz %d: %w", quizID, err)
	}
	return quiz, nil
}

func (s *QuizService) latestAttempt(studentID, quizID uint) (*model.QuizAttempt, error) {
	latest, err := s.Attempts.Latest(studentID, quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load latest attempt: %w", err)
	}
	return latest, nil
}

func gate(kind model.GateKind) *model.GateResult {
	return &model.GateResult{Kind: kind, Message: kind.Message()}
}

// decide applies the retry policy to the learner's latest attempt. It never writes.
func (s *QuizService) decide(quiz *model.Quiz, studentID uint, latest *model.QuizAttempt) (*model.GateResult, error) {
	if latest == nil {
		res := gate(model.GateNormal)
		res.Quiz = quiz.ForStudent()
		return res, nil
	}
	if latest.Passed {
		res := gate(model.GateAlreadyPassed)
		res.Quiz = quiz.ForStudent()
		return res, nil
	}

	policy := s.Policy()
	owner, err := s.findOwner(quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve quiz owner: %w", err)
	}

	if latest.AttemptNumber >= policy.MaxAttempts {
		res := gate(model.GateAlreadyFailed)
		res.CourseID = owner.courseID()
		return res, nil
	}

	if policy.RetryCooldown > 0 {
		if wait := latest.CreatedAt.Add(policy.RetryCooldown).Sub(s.now()); wait > 0 {
			return nil, fmt.Errorf("%w: try again in %s", util.ErrRetryCooldown, wait.Round(time.Second))
		}
	}

	if owner.Lesson != nil && policy.RequireEnhancement {
		enhanced, err := s.Progress.HasEnhanced(studentID, owner.Lesson.ID)
		if err != nil {
			return nil, fmt.Errorf("check lesson enhancement: %w", err)
		}
		if !enhanced {
			res := gate(model.GateNeedsEnhancement)
			lessonID := owner.Lesson.ID
			res.LessonID = &lessonID
			return res, nil
		}
	}

	res := gate(model.GateNormal)
	res.Quiz = quiz.ForStudent()
	return res, nil
}

// GetQuizForStudent runs the quiz fetch gate for one learner.
func (s *QuizService) GetQuizForStudent(quizID, studentID uint) (*model.GateResult, error) {
	quiz, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}
	latest, err := s.latestAttempt(studentID, quizID)
	if err != nil {
		return nil, err
	}
	res, err := s.decide(quiz, studentID, latest)
	if err != nil {
		return nil, err
	}
	monitoring.RecordGate(string(res.Kind))
	return res, nil
}

type EvaluateRequest struct {
	QuizID  uint              `json:"quizId" binding:"required"`
	Answers model.AnswerSheet `json:"answers" binding:"required"`
}

// QuestionReview reveals the expected answers once the learner can no longer retry.
type QuestionReview struct {
	QuestionText   string   `json:"questionText"`
	CorrectAnswers []string `json:"correctAnswers"`
	Explanation    string   `json:"explanation,omitempty"`
}

type EvaluationResult struct {
	QuizAttempt *model.QuizAttempt `json:"quizAttempt"`
	Message     string             `json:"message"`
	Marks       []bool             `json:"marks"`
	Review      []QuestionReview   `json:"review,omitempty"`
}

func attemptMessage(passed bool) string {
	if passed {
		return util.MessagePassed
	}
	return util.MessageFailed
}

// Evaluate scores a submission and stores it as the learner's next attempt.
func (s *QuizService) Evaluate(studentID uint, req EvaluateRequest) (*EvaluationResult, error) {
	quiz, err := s.loadQuiz(req.QuizID)
	if err != nil {
		return nil, err
	}
	if len(req.Answers) != len(quiz.Questions) {
		return nil, fmt.Errorf("%w: got %d, want %d", util.ErrAnswerCountMismatch, len(req.Answers), len(quiz.Questions))
	}

	latest, err := s.latestAttempt(studentID, quiz.ID)
	if err != nil {
		return nil, err
	}
	g, err := s.decide(quiz, studentID, latest)
	if err != nil {
		return nil, err
	}
	if !g.CanAttempt() {
		return nil, fmt.Errorf("%w: %s", util.ErrQuizLocked, g.Kind)
	}

	answers := req.Answers.Normalized()
	result, err := Score(quiz, answers)
	if err != nil {
		return nil, err
	}

	number := 1
	if latest != nil {
		number = latest.AttemptNumber + 1
	}
	attempt := &model.QuizAttempt{
		QuizID:        quiz.ID,
		StudentID:     studentID,
		AttemptNumber: number,
		Answers:       answers,
		Score:         result.Score,
		Passed:        result.Passed,
	}
	if err := s.Attempts.Create(attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrDuplicateAttempt
		}
		return nil, fmt.Errorf("save attempt: %w", err)
	}
	monitoring.RecordAttempt(attempt.Passed)

	// The attempt is already stored, so a progress failure is logged rather than returned.
	if err := s.updateProgress(studentID, quiz.ID, attempt); err != nil {
		logger.Log.Error("Failed to update student progress",
			zap.Uint("studentId", studentID),
			zap.Uint("quizId", quiz.ID),
			zap.Error(err))
	}

	out := &EvaluationResult{
		QuizAttempt: attempt,
		Message:     attemptMessage(attempt.Passed),
		Marks:       result.Marks,
	}
	if attempt.Passed || attempt.AttemptNumber >= s.Policy().MaxAttempts {
		out.Review = make([]QuestionReview, len(quiz.Questions))
		for i, q := range quiz.Questions {
			out.Review[i] = QuestionReview{
				QuestionText:   q.Text,
				CorrectAnswers: q.CorrectAnswers,
				Explanation:    q.Explanation,
			}
		}
	}
	return out, nil
}

// updateProgress moves the learner's course progress after an attempt:
//   - passed final quiz: completed
//   - failed on the last allowed attempt: failed
//   - passed lesson quiz: in progress on the next lesson
//
// A missing progress row is created, which enrolls the learner implicitly.
func (s *QuizService) updateProgress(studentID, quizID uint, attempt *model.QuizAttempt) error {
	owner, err := s.findOwner(quizID)
	if err != nil {
		return err
	}
	if owner.Course == nil {
		return nil
	}

	progress, err := s.Progress.Find(studentID, owner.Course.ID)
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		return err
	}
	if isNew {
		progress = &model.StudentProgress{
			StudentID:        studentID,
			CourseID:         owner.Course.ID,
			Lesson:           1,
			CompletionStatus: model.StatusInProgress,
		}
	}

	exhausted := !attempt.Passed && attempt.AttemptNumber >= s.Policy().MaxAttempts
	switch {
	case attempt.Passed && owner.Lesson == nil:
		progress.CompletionStatus = model.StatusCompleted
		progress.Lesson = len(owner.Course.Lessons) + 1
	case exhausted:
		progress.CompletionStatus = model.StatusFailed
	case attempt.Passed:
		progress.CompletionStatus = model.StatusInProgress
		if next := owner.Lesson.Order + 1; next > progress.Lesson {
			progress.Lesson = next
		}
	case !isNew:
		return nil
	}

	if isNew {
		return s.Progress.Create(progress)
	}
	return s.Progress.Save(progress)
}

func (s *QuizService) ListAttempts(studentID uint, page, limit int) (util.PageResponse, error) {
	attempts, total, err := s.Attempts.ListByStudent(studentID, page, limit)
	if err != nil {
		return util.PageResponse{}, err
	}
	if attempts == nil {
		attempts = []model.QuizAttempt{}
	}
	return util.NewPageResponse(attempts, total, page, limit), nil
}

type AttemptView struct {
	QuizAttempt *model.QuizAttempt `json:"quizAttempt"`
	Message     string             `json:"message"`
}

// GetAttempt returns one of the learner's own attempts. Other learners' attempts read as missing.
func (s *QuizService) GetAttempt(studentID uint, id string) (*AttemptView, error) {
	attempt, err := s.Attempts.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrAttemptNotFound
	}
	return &AttemptView{QuizAttempt: attempt, Message: attemptMessage(attempt.Passed)}, nil
}
