package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"

	"github.com/hotelmaintpro/maintenance-backend/internal/config"
	"github.com/hotelmaintpro/maintenance-backend/internal/models"
	"github.com/hotelmaintpro/maintenance-backend/internal/services"
	"github.com/hotelmaintpro/maintenance-backend/internal/store"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *services.AuthService
	store       *store.Store
	config      *config.Config
	logger      *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, st *store.Store, cfg *config.Config, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       st,
		config:      cfg,
		logger:      logger,
	}
}

// LoginRequest represents the request to sign in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response after a successful sign-in
type LoginResponse struct {
	Message   string      `json:"message"`
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expires_in_seconds"`
	User      models.User `json:"user"`
}

// SignupRequest represents the request to create an account
type SignupRequest struct {
	Email    string          `json:"email" binding:"required"`
	Password string          `json:"password" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required"`
	Phone    string          `json:"phone"`
	Color    string          `json:"color"`
	Avatar   string          `json:"avatar"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Email and password are required",
		})
		return
	}

	user, token, err := h.authService.SignIn(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "invalid_credentials",
				Message: "Invalid email or password",
			})
		case errors.Is(err, services.ErrEmailNotConfirmed):
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "email_not_confirmed",
				Message: "Email not confirmed",
			})
		case errors.Is(err, services.ErrProfileMissing):
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "profile_missing",
				Message: "No profile found for this user",
			})
		default:
			h.logger.WithError(err).Error("Sign-in failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: "Failed to sign in",
			})
		}
		return
	}

	ua := user_agent.New(c.Request.UserAgent())
	browser, _ := ua.Browser()
	h.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"platform": ua.OS(),
		"browser":  browser,
		"mobile":   ua.Mobile(),
	}).Info("Session opened")

	c.JSON(http.StatusOK, LoginResponse{
		Message:   "Signed in successfully",
		Token:     token,
		ExpiresIn: int(h.config.JWT.SessionExpiry.Seconds()),
		User:      *user,
	})
}

// Signup handles POST /api/v1/users/signup. Only admins reach this route.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	user := models.User{
		Name:      req.Name,
		Role:      req.Role,
		Phone:     req.Phone,
		Color:     req.Color,
		Avatar:    models.ClassifyAvatar(req.Avatar),
		CanDelete: true,
	}

	created, err := h.authService.SignUp(req.Email, req.Password, user)
	if err != nil {
		h.logger.WithError(err).Error("Signup failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create account",
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.SignOut(); err != nil {
		h.logger.WithError(err).Error("Sign-out failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to sign out",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := currentActor(c, h.store)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, actor)
}
