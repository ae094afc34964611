package controller

import (
	"elearn_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// errorStatus maps domain errors onto HTTP status codes. Anything not listed is a 500.
var errorStatus = []struct {
	err    error
	status int
}{
	{util.ErrAnswerCountMismatch, http.StatusBadRequest},
	{util.ErrAnswerShape, http.StatusBadRequest},
	{util.ErrInvalidQuiz, http.StatusBadRequest},
	{util.ErrAlreadyPassed, http.StatusBadRequest},
	{util.ErrAttemptsRemaining, http.StatusBadRequest},
	{util.ErrInvalidCredentials, http.StatusUnauthorized},
	{util.ErrUnauthorized, http.StatusUnauthorized},
	{util.ErrPermissionDenied, http.StatusForbidden},
	{util.ErrQuizNotFound, http.StatusNotFound},
	{util.ErrAttemptNotFound, http.StatusNotFound},
	{util.ErrCourseNotFound, http.StatusNotFound},
	{util.ErrLessonNotFound, http.StatusNotFound},
	{util.ErrUserNotFound, http.StatusNotFound},
	{util.ErrRecommendedNotFound, http.StatusNotFound},
	{util.ErrMaterialNotFound, http.StatusNotFound},
	{util.ErrNoRecommendation, http.StatusNotFound},
	{util.ErrQuizLocked, http.StatusConflict},
	{util.ErrDuplicateAttempt, http.StatusConflict},
	{util.ErrAlreadyEnrolled, http.StatusConflict},
	{util.ErrEmailRegistered, http.StatusConflict},
	{util.ErrUnsupportedMaterial, http.StatusUnsupportedMediaType},
	{util.ErrRetryCooldown, http.StatusTooManyRequests},
	{util.ErrRecommenderFailed, http.StatusBadGateway},
	{util.ErrAIResponseInvalid, http.StatusBadGateway},
}

func respondError(ctx *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			util.Error(ctx, e.status, err.Error())
			return
		}
	}
	util.LogInternalError(ctx, err)
}

func currentUser(ctx *gin.Context) *util.Claims {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
	}
	return claims
}

func uintParam(ctx *gin.Context, name string) (uint, bool) {
	id, ok := util.ParamUint(ctx, name)
	if !ok {
		util.BadRequest(ctx, "invalid "+name)
	}
	return id, ok
}
