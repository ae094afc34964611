package controller

import (
	"elearn_backend/internal/model"
	"elearn_backend/internal/service"
	"elearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthAPI interface {
	Register(req service.RegisterRequest) (*model.User, error)
	Login(req service.LoginRequest) (*service.LoginResponse, error)
	GetUser(id uint) (*model.User, error)
	UpdateLearningProfile(userID uint, profile model.LearningProfile) (*model.User, error)
}

type AuthController struct {
	AuthService AuthAPI
}

func NewAuthController(authService AuthAPI) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a student or teacher account with an optional learning profile
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterRequest true "Registration data"
// @Success 201 {object} util.Response{data=object} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 409 {object} util.Response "Email already registered"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": user.ID})
}

// Login godoc
// @Summary Log in
// @Description Checks the credentials and returns a JWT
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   body body service.LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.LoginResponse} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 401 {object} util.Response "Invalid credentials"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// GetProfile godoc
// @Summary Current user
// @Tags Auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	user, err := c.AuthService.GetUser(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateLearningProfile godoc
// @Summary Update learning profile
// @Description Stores the answers used by the course recommender
// @Tags Auth
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body model.LearningProfile true "Learning profile"
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /user/learning-profile [put]
func (c *AuthController) UpdateLearningProfile(ctx *gin.Context) {
	claims := currentUser(ctx)
	if claims == nil {
		return
	}
	var profile model.LearningProfile
	if err := ctx.ShouldBindJSON(&profile); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.UpdateLearningProfile(claims.UserID, profile)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
