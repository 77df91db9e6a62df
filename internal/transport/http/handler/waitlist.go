package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/gin-gonic/gin"
)

type waitlistService interface {
	Join(ctx context.Context, email, source string) error
	Count(ctx context.Context) (int64, error)
}

type WaitlistHandler struct {
	waitlist waitlistService
	logger   *slog.Logger
}

func NewWaitlistHandler(waitlist waitlistService, logger *slog.Logger) *WaitlistHandler {
	return &WaitlistHandler{waitlist: waitlist, logger: logger.With("component", "waitlist_handler")}
}

type joinWaitlistRequest struct {
	Email  string `json:"email"  form:"email"  binding:"required,email,max=254"`
	Source string `json:"source" form:"source" binding:"max=64"`
}

// POST /api/waitlist
// Returns 202 for any valid address, so the response never reveals whether
// the email was already on the list.
func (h *WaitlistHandler) Join(c *gin.Context) {
	var req joinWaitlistRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidEmail.Error()})
		return
	}

	if err := h.waitlist.Join(c.Request.Context(), req.Email, req.Source); err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidEmail.Error()})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "join waitlist", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// GET /api/waitlist/count
func (h *WaitlistHandler) Count(c *gin.Context) {
	n, err := h.waitlist.Count(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "count waitlist", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}
