package app

import (
	"elearn_backend/docs"
	"elearn_backend/internal/config"
	"elearn_backend/internal/middleware"
	"elearn_backend/internal/model"
	"elearn_backend/internal/util"
	"elearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.NoRoute(util.NotFound)

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/learning-profile", c.auth.UpdateLearningProfile)

	quiz := rg.Group("/quiz")
	{
		quiz.POST("/evaluate", c.quiz.Evaluate)
		quiz.GET("/attempts", c.quiz.ListAttempts)
		quiz.GET("/attempts/:id", c.quiz.GetAttempt)
		quiz.GET("/:quizId", c.quiz.GetQuiz)
	}

	course := rg.Group("/course")
	{
		course.GET("", c.course.ListCourses)
		course.GET("/user", c.course.UserCourses)
		course.GET("/recommendation", c.course.Recommendation)
		course.GET("/enhance/:lessonId", c.course.Enhance)
		course.GET("/resource/:lessonId", c.course.Resources)
		course.GET("/knn_recommendation/:courseId", c.course.KNNRecommendation)
		course.POST("/enroll/:courseId", c.course.Enroll)
		course.GET("/:courseId", c.course.GetCourse)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/quizzes", c.teacher.CreateQuiz)
		teacher.GET("/quizzes/:id/attempts/export", c.teacher.ExportAttempts)
		teacher.POST("/lessons/:lessonId/material", c.teacher.UploadMaterial)
	}
}
