package controller

import (
	"context"
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/service"
	"elearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseAPI interface {
	ListCourses(filter repository.CourseFilter, page, limit int) (util.PageResponse, error)
	GetCourseDetail(courseID, studentID uint) (*service.CourseDetail, error)
	Enroll(studentID, courseID uint) (*model.StudentProgress, error)
	GetUserCourses(studentID uint) (*service.UserCourses, error)
}

type EnhancementAPI interface {
	Enhance(ctx context.Context, studentID, lessonID uint) (*service.EnhancementResult, error)
}

type ResourceAPI interface {
	GetResources(ctx context.Context, lessonID uint) (*service.ResourceResult, error)
}

type RecommendationAPI interface {
	RecommendAfterFailure(ctx context.Context, studentID, courseID uint) (*service.KNNRecommendation, error)
	RecommendByProfile(ctx context.Context, studentID uint) (*service.PredictedCourse, error)
}

type CourseController struct {
	CourseService         CourseAPI
	EnhancementService    EnhancementAPI
	ResourceService       ResourceAPI
	RecommendationService RecommendationAPI
}

func NewCourseController(courses CourseAPI, enhancement EnhancementAPI, resources ResourceAPI, recommendations RecommendationAPI) *CourseController {
	return &CourseController{
		CourseService:         courses,
		EnhancementService:    enhancement,
		ResourceService:       resources,
		RecommendationService: recommendations,
	}
}

// ListCourses godoc
// @Summary List courses
// @Tags Course
// @Produce  json
// @Security ApiKeyAuth
// @Param   title query string false "Title contains"
// @Param   category query string false "Category"
// @Param   level query string false "Level"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse} "Courses"
// @Router /course [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, limit := util.Pagination(ctx)
	filter := repository.CourseFilter{
		Title:    ctx.Query("title"),
		Category: ctx.Query("category"),
		Level:    ctx.Query("level"),
	}

	res, err := c.CourseService.ListCourses(filter, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// GetCourse godoc
// @Summary Course detail
// @Description The course with its ordered lessons and the caller's progress, if enrolled
// @Tags Course
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseDetail} "Course"
// @Failure 404 {object} util.Response "Course not found"
// @Router /course/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	courseID, ok := uintParam(ctx, "courseId")
	if !ok {
		return
	}

	res, err := c.CourseService.GetCourseDetail(courseID, claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags Course
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "Course ID"
// @Success 201 {object} util.Response{data=model.StudentProgress} "Enrolled"
// @Failure 404 {object} util.Response "Course not found"
// @Failure 409 {object} util.Response "Already enrolled"
// @Router /course/enroll/{courseId} [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	courseID, ok := uintParam(ctx, "courseId")
	if !ok {
		return
	}

	progress, err := c.CourseService.Enroll(claims.UserID, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, progress)
}

// UserCourses godoc
// @Summary My courses
// @Description The caller's courses grouped by completion status
// @Tags Course
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.UserCourses} "Courses"
// @Router /course/user [get]
func (c *CourseController) UserCourses(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}

	res, err := c.CourseService.GetUserCourses(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Enhance godoc
// @Summary Enhanced lesson
// @Description Restructures the lesson material with the AI provider and unlocks a retry of the lesson quiz
// @Tags Course
// @Produce  json
// @Security ApiKeyAuth
// @Param   lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response{data=service.EnhancementResult} "Enhanced content"
// @Failure 404 {object} util.Response "Lesson or material not found"
// @Failure 502 {object} util.Response "AI provider failed"
// @Router /course/enhance/{lessonId} [get]
func (c *CourseController) Enhance(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	lessonID, ok := uintParam(ctx, "lessonId")
	if !ok {
		return
	}

	res, err := c.EnhancementService.Enhance(ctx.Request.Context(), claims.UserID, lessonID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, res.Message, res)
}

// Resources godoc
// @Summary Curated resources
// @Description Videos and courses on the lesson topic, suggested by the AI provider
// @Tags Course
// @Produce  json
// @Security ApiKeyAuth
// @Param   lessonId path int true "Lesson ID"
// @Success 200 {object} util.Response{data=service.ResourceResult} "Resources"
// @Failure 404 {object} util.Response "Lesson not found"
// @Failure 502 {object} util.Response "AI provider failed"
// @Router /course/resource/{lessonId} [get]
func (c *CourseController) Resources(ctx *gin.Context) {
	lessonID, ok := uintParam(ctx, "lessonId")
	if !ok {
		return
	}

	res, err := c.ResourceService.GetResources(ctx.Request.Context(), lessonID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, res.Message, res)
}

// KNNRecommendation godoc
// @Summary Recommendation after failure
// @Description Suggests another course once the current quiz is failed on every allowed attempt
// @Tags Course
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "Course ID"
// @Success 200 {object} util.Response{data=service.KNNRecommendation} "Recommended course"
// @Failure 400 {object} util.Response "Quiz passed or attempts remain"
// @Failure 404 {object} util.Response "No attempt or recommended course not found"
// @Failure 502 {object} util.Response "Recommender failed"
// @Router /course/knn_recommendation/{courseId} [get]
func (c *CourseController) KNNRecommendation(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	courseID, ok := uintParam(ctx, "courseId")
	if !ok {
		return
	}

	res, err := c.RecommendationService.RecommendAfterFailure(ctx.Request.Context(), claims.UserID, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Recommendation godoc
// @Summary Recommendation by profile
// @Description Scores courses of the caller's favourite topic and returns the best one
// @Tags Course
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.PredictedCourse} "Best course"
// @Failure 404 {object} util.Response "No candidate course"
// @Failure 502 {object} util.Response "Recommender failed"
// @Router /course/recommendation [get]
func (c *CourseController) Recommendation(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}

	res, err := c.RecommendationService.RecommendByProfile(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, res)
}
