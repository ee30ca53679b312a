package controllers

import (
	"net/http"

	apperrors "github.com/KingGimer44/VideoJuego/common/errors"
	"github.com/KingGimer44/VideoJuego/models"
	"github.com/KingGimer44/VideoJuego/services"

	"github.com/gin-gonic/gin"
)

// AuthController handles login and registration.
type AuthController struct {
	authService services.AuthService
	validator   *RequestValidator
}

func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService, validator: NewRequestValidator()}
}

// Register handles POST /auth/register.
func (ac *AuthController) Register(ctx *gin.Context) {
	var req models.RegisterRequest
	if appErr := ac.validator.BindJSON(ctx, &req); appErr != nil {
		apperrors.Respond(ctx, appErr)
		return
	}
	if appErr := ac.validator.ValidateRegister(&req); appErr != nil {
		apperrors.Respond(ctx, appErr)
		return
	}

	resp, svcErr := ac.authService.Register(ctx.Request.Context(), &req)
	if svcErr != nil {
		apperrors.Respond(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if appErr := ac.validator.BindJSON(ctx, &req); appErr != nil {
		apperrors.Respond(ctx, appErr)
		return
	}
	if appErr := ac.validator.ValidateLogin(&req); appErr != nil {
		apperrors.Respond(ctx, appErr)
		return
	}

	resp, svcErr := ac.authService.Login(ctx.Request.Context(), &req)
	if svcErr != nil {
		apperrors.Respond(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
