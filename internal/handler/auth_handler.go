package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/response"
	"github.com/examgen/examgen-backend/internal/service"
	"github.com/examgen/examgen-backend/internal/validator"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// POST /auth/register
// Creates a teacher account for a gmail address.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotAllowed):
			response.Fail(c, http.StatusBadRequest, response.ErrEmailNotAllowed)
		case errors.Is(err, service.ErrUsernameTaken):
			response.Fail(c, http.StatusBadRequest, response.ErrUsernameTaken)
		default:
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.SuccessFlat(c, http.StatusCreated, gin.H{
		"message": "Registration successful! You can now login.",
		"userId":  user.ID,
	})
}

// Login godoc
// POST /auth/login
// Authenticates with username and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusBadRequest, response.ErrUserNotFound)
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidCredentials)
		default:
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, res)
}

// GoogleLogin godoc
// POST /auth/google
// Exchanges a Google ID token for an application token.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req model.GoogleLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	res, err := h.authService.GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		if !errors.Is(err, service.ErrGoogleAuthFailed) {
			_ = c.Error(err)
		}
		response.Fail(c, http.StatusUnauthorized, response.ErrGoogleAuthFailed)
		return
	}

	response.Success(c, http.StatusOK, res)
}
