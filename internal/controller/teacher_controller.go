package controller

import (
	"context"
	"elearn_backend/internal/model"
	"elearn_backend/internal/service"
	"elearn_backend/internal/util"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const maxMaterialUpload = 4 << 20

type QuizAuthoringAPI interface {
	CreateQuiz(userID uint, role model.UserRole, req service.CreateQuizRequest) (*model.Quiz, error)
}

type ReportAPI interface {
	ExportAttempts(userID uint, role model.UserRole, quizID uint) ([]byte, error)
}

type MaterialAPI interface {
	UploadMaterial(ctx context.Context, userID uint, role model.UserRole, lessonID uint, filename string, body io.Reader, size int64) (*model.Lesson, error)
}

type TeacherController struct {
	QuizService   QuizAuthoringAPI
	ReportService ReportAPI
	CourseService MaterialAPI
}

func NewTeacherController(quizzes QuizAuthoringAPI, reports ReportAPI, courses MaterialAPI) *TeacherController {
	return &TeacherController{
		QuizService:   quizzes,
		ReportService: reports,
		CourseService: courses,
	}
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Description Attaches a new quiz to a lesson, or to a course as its final quiz
// @Tags Teacher
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateQuizRequest true "Quiz definition"
// @Success 201 {object} util.Response{data=model.Quiz} "Created"
// @Failure 400 {object} util.Response "Invalid quiz"
// @Failure 403 {object} util.Response "Not your course"
// @Failure 404 {object} util.Response "Course or lesson not found"
// @Router /teacher/quizzes [post]
func (c *TeacherController) CreateQuiz(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	var req service.CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(claims.UserID, claims.Role, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// ExportAttempts godoc
// @Summary Export quiz attempts
// @Description Downloads every attempt on the quiz as an xlsx workbook
// @Tags Teacher
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param   id path int true "Quiz ID"
// @Success 200 {file} file "Workbook"
// @Failure 403 {object} util.Response "Not your course"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /teacher/quizzes/{id}/attempts/export [get]
func (c *TeacherController) ExportAttempts(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	quizID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	data, err := c.ReportService.ExportAttempts(claims.UserID, claims.Role, quizID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	filename := fmt.Sprintf("quiz-%d-attempts-%s.xlsx", quizID, time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, util.MimeXLSX, data)
}

// UploadMaterial godoc
// @Summary Upload lesson material
// @Description Stores the text the lesson enhancement is generated from
// @Tags Teacher
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   lessonId path int true "Lesson ID"
// @Param   file formData file true "Plain text material"
// @Success 200 {object} util.Response{data=model.Lesson} "Lesson"
// @Failure 400 {object} util.Response "Missing or oversized file"
// @Failure 403 {object} util.Response "Not your course"
// @Failure 415 {object} util.Response "Material is not text"
// @Router /teacher/lessons/{lessonId}/material [post]
func (c *TeacherController) UploadMaterial(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	lessonID, ok := uintParam(ctx, "lessonId")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if file.Size > maxMaterialUpload {
		util.BadRequest(ctx, "file is too large")
		return
	}
	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	lesson, err := c.CourseService.UploadMaterial(ctx.Request.Context(), claims.UserID, claims.Role, lessonID, file.Filename, src, file.Size)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}
