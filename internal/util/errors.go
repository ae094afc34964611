package util

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrQuizNotFound        = errors.New("quiz not found")
	ErrQuizNotLinked       = errors.New("quiz is not attached to any course or lesson")
	ErrQuizLocked          = errors.New("quiz cannot be attempted right now")
	ErrRetryCooldown       = errors.New("retry not allowed yet")
	ErrAnswerCountMismatch = errors.New("answers must have the same length as quiz questions")
	ErrAnswerShape         = errors.New("answer shape does not match the question type")
	ErrAttemptNotFound     = errors.New("quiz attempt not found")
	ErrDuplicateAttempt    = errors.New("an attempt with this number already exists")
	ErrInvalidQuiz         = errors.New("invalid quiz definition")

	ErrCourseNotFound  = errors.New("course not found")
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrAlreadyEnrolled = errors.New("already enrolled")

	ErrAlreadyPassed       = errors.New("quiz already passed")
	ErrAttemptsRemaining   = errors.New("quiz must be failed on every allowed attempt before a recommendation")
	ErrRecommendedNotFound = errors.New("recommended course not found")
	ErrRecommenderFailed   = errors.New("recommendation service failed")
	ErrNoRecommendation    = errors.New("no recommendation available")
	ErrMaterialNotFound    = errors.New("lesson material not found")
	ErrUnsupportedMaterial = errors.New("unsupported material type")
	ErrAIResponseInvalid   = errors.New("invalid AI response")
)
