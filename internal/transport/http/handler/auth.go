package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignUp(ctx context.Context, email, password string) (bool, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

// NewAuthHandler accepts a nil usecase when Supabase is not configured;
// every endpoint then answers 503.
func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type sessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

func (h *AuthHandler) available(c *gin.Context) bool {
	if h.authUsecase == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errAuthUnavailable})
		return false
	}
	return true
}

// POST /api/auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.authUsecase.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "sign in", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": errUpstream})
		return
	}

	c.JSON(http.StatusOK, sessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    session.ExpiresIn,
	})
}

// POST /api/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confirm, err := h.authUsecase.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidEmail.Error()})
		case errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrWeakPassword.Error()})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
		default:
			h.logger.ErrorContext(c.Request.Context(), "sign up", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": errUpstream})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"confirmation_required": confirm})
}
