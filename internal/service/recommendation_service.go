package service

import (
	"context"
	"elearn_backend/internal/config"
	"elearn_backend/internal/model"
	"elearn_backend/internal/util"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	// recommenderAppID identifies this platform to the KNN model.
	recommenderAppID  = 9001
	predictCandidates = 5
)

type RecommendationService struct {
	Users       UserStore
	Courses     CourseStore
	Progress    ProgressStore
	Attempts    AttemptStore
	Recommender Recommender
	Policy      func() config.QuizPolicy
}

func NewRecommendationService(users UserStore, courses CourseStore, progress ProgressStore, attempts AttemptStore, rec Recommender, policy func() config.QuizPolicy) *RecommendationService {
	return &RecommendationService{
		Users:       users,
		Courses:     courses,
		Progress:    progress,
		Attempts:    attempts,
		Recommender: rec,
		Policy:      policy,
	}
}

type KNNRecommendation struct {
	CourseRecommended *model.Course `json:"courseRecommended"`
}

func (s *RecommendationService) loadUser(id uint) (*model.User, error) {
	user, err := s.Users.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// currentQuiz is the quiz the learner is stuck on: the quiz of the current lesson,
// or the final quiz once every lesson is done.
func currentQuiz(course *model.Course, progress *model.StudentProgress) (uint, error) {
	var quizID *uint
	if lesson := course.LessonAt(progress.Lesson); lesson != nil {
		quizID = lesson.QuizID
	} else {
		quizID = course.FinalQuizID
	}
	if quizID == nil {
		return 0, util.ErrQuizNotFound
	}
	return *quizID, nil
}

// RecommendAfterFailure asks the KNN model for another course once the learner has
// failed the current quiz on every allowed attempt.
func (s *RecommendationService) RecommendAfterFailure(ctx context.Context, studentID, courseID uint) (*KNNRecommendation, error) {
	course, err := s.Courses.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	user, err := s.loadUser(studentID)
	if err != nil {
		return nil, err
	}

	progress, err := s.Progress.Find(studentID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	quizID, err := currentQuiz(course, progress)
	if err != nil {
		return nil, err
	}

	attempt, err := s.Attempts.Latest(studentID, quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	if attempt.Passed {
		return nil, util.ErrAlreadyPassed
	}
	if attempt.AttemptNumber < s.Policy().MaxAttempts {
		return nil, util.ErrAttemptsRemaining
	}

	rec, err := s.Recommender.Recommend(ctx, KNNRequest{
		AgeRange:             user.AgeGroup,
		EducationLevel:       user.EducationLevel,
		ProgrammingLevel:     user.ProgrammingExperience,
		LearningStyle:        user.LearningStyle,
		AvailableTimePerWeek: user.WeeklyAvailability,
		CourseDurationPref:   user.PreferredCourseDuration,
		Domain:               course.Category,
		IDApp:                recommenderAppID,
		Note:                 attempt.Score,
	})
	if err != nil {
		return nil, err
	}
	if rec.FallbackCourse == "" {
		return nil, util.ErrNoRecommendation
	}

	recommended, err := s.Courses.FindByTitle(rec.FallbackCourse)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %q", util.ErrRecommendedNotFound, rec.FallbackCourse)
	}
	if err != nil {
		return nil, err
	}
	return &KNNRecommendation{CourseRecommended: recommended}, nil
}

type PredictedCourse struct {
	BestCourse     *model.Course    `json:"bestCourse"`
	BestPrediction *PredictResponse `json:"bestPrediction"`
}

func predictRequest(course model.Course, user *model.User) PredictRequest {
	return PredictRequest{
		Domain:               course.Category,
		CourseName:           course.Title,
		Level:                course.Level,
		Format:               course.Format,
		Duration:             course.Duration,
		AgeRange:             user.AgeGroup,
		EducationLevel:       user.EducationLevel,
		ProgrammingLevel:     user.ProgrammingExperience,
		LearningStyle:        user.LearningStyle,
		AvailableTimePerWeek: user.WeeklyAvailability,
		CourseDurationPref:   user.PreferredCourseDuration,
		PreferredTheme:       user.FavoriteProgrammingTopic,
	}
}

// RecommendByProfile scores a handful of courses in the learner's favourite topic
// and returns the best one.
func (s *RecommendationService) RecommendByProfile(ctx context.Context, studentID uint) (*PredictedCourse, error) {
	user, err := s.loadUser(studentID)
	if err != nil {
		return nil, err
	}
	courses, err := s.Courses.ListByCategory(user.FavoriteProgrammingTopic, predictCandidates)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, util.ErrNoRecommendation
	}

	predictions := make([]*PredictResponse, len(courses))
	g, gctx := errgroup.WithContext(ctx)
	for i := range courses {
		g.Go(func() error {
			p, err := s.Recommender.Predict(gctx, predictRequest(courses[i], user))
			if err != nil {
				return err
			}
			predictions[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := 0
	for i := range predictions {
		if predictions[i].Prediction > predictions[best].Prediction {
			best = i
		}
	}
	return &PredictedCourse{BestCourse: &courses[best], BestPrediction: predictions[best]}, nil
}
