package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/metrics"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
	"github.com/gin-gonic/gin"
)

type countdownReader interface {
	Current(ctx context.Context) (*usecase.CountdownView, error)
	Remaining(c *domain.Countdown) domain.Remaining
}

type CountdownHandler struct {
	countdown countdownReader
	interval  time.Duration
	logger    *slog.Logger
}

// NewCountdownHandler builds the handler. interval is the SSE tick period.
func NewCountdownHandler(countdown countdownReader, interval time.Duration, logger *slog.Logger) *CountdownHandler {
	return &CountdownHandler{
		countdown: countdown,
		interval:  interval,
		logger:    logger.With("component", "countdown_handler"),
	}
}

type countdownResponse struct {
	Slug      string           `json:"slug"`
	Label     string           `json:"label"`
	TargetAt  time.Time        `json:"target_at"`
	Remaining domain.Remaining `json:"remaining"`
	Expired   bool             `json:"expired"`
}

func (h *CountdownHandler) current(c *gin.Context) (*usecase.CountdownView, bool) {
	view, err := h.countdown.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrCountdownNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errCountdownNotFound})
			return nil, false
		}
		h.logger.ErrorContext(c.Request.Context(), "get countdown", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return nil, false
	}
	return view, true
}

// GET /api/countdown
func (h *CountdownHandler) Get(c *gin.Context) {
	view, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, countdownResponse{
		Slug:      view.Countdown.Slug,
		Label:     view.Countdown.Label,
		TargetAt:  view.Countdown.TargetAt,
		Remaining: view.Remaining,
		Expired:   view.Remaining.Expired,
	})
}

// GET /api/countdown/stream
// Emits a "tick" event per interval and a final "expired" event, then closes.
func (h *CountdownHandler) Stream(c *gin.Context) {
	view, ok := h.current(c)
	if !ok {
		return
	}

	metrics.CountdownStreamClients.Inc()
	defer metrics.CountdownStreamClients.Dec()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	c.Stream(func(_ io.Writer) bool {
		r := h.countdown.Remaining(view.Countdown)
		if r.Expired {
			c.SSEvent("expired", r)
			return false
		}
		c.SSEvent("tick", r)

		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			return true
		}
	})
}
