package controller

import (
	"elearn_backend/internal/model"
	"elearn_backend/internal/service"
	"elearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizAPI interface {
	GetQuizForStudent(quizID, studentID uint) (*model.GateResult, error)
	Evaluate(studentID uint, req service.EvaluateRequest) (*service.EvaluationResult, error)
	ListAttempts(studentID uint, page, limit int) (util.PageResponse, error)
	GetAttempt(studentID uint, id string) (*service.AttemptView, error)
}

type QuizController struct {
	QuizService QuizAPI
}

func NewQuizController(quizService QuizAPI) *QuizController {
	return &QuizController{QuizService: quizService}
}

// GetQuiz godoc
// @Summary Fetch a quiz
// @Description Runs the attempt gate. A normal or already-passed result carries the quiz
// @Description without correct answers; needs-enhancement carries lessonId and already-failed courseId.
// @Tags Quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   quizId path int true "Quiz ID"
// @Success 200 {object} util.Response{data=model.GateResult} "Gate outcome"
// @Failure 404 {object} util.Response "Quiz not found"
// @Failure 429 {object} util.Response "Retry cooldown"
// @Router /quiz/{quizId} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	quizID, ok := uintParam(ctx, "quizId")
	if !ok {
		return
	}

	res, err := c.QuizService.GetQuizForStudent(quizID, claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, res.Message, res)
}

// Evaluate godoc
// @Summary Submit quiz answers
// @Description Scores the answers, records the attempt and updates course progress
// @Tags Quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.EvaluateRequest true "Answers, one per question"
// @Success 200 {object} util.Response{data=service.EvaluationResult} "Attempt"
// @Failure 400 {object} util.Response "Answer count or shape mismatch"
// @Failure 404 {object} util.Response "Quiz not found"
// @Failure 409 {object} util.Response "Quiz locked or duplicate submission"
// @Router /quiz/evaluate [post]
func (c *QuizController) Evaluate(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	var req service.EvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.QuizService.Evaluate(claims.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, res.Message, res)
}

// ListAttempts godoc
// @Summary My quiz attempts
// @Tags Quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse} "Attempts, newest first"
// @Router /quiz/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	page, limit := util.Pagination(ctx)

	res, err := c.QuizService.ListAttempts(claims.UserID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// GetAttempt godoc
// @Summary One quiz attempt
// @Tags Quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Attempt ID"
// @Success 200 {object} util.Response{data=service.AttemptView} "Attempt"
// @Failure 404 {object} util.Response "Not found or not yours"
// @Router /quiz/attempts/{id} [get]
func (c *QuizController) GetAttempt(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}

	res, err := c.QuizService.GetAttempt(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
