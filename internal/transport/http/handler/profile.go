package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/transport/http/middleware"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
	"github.com/gin-gonic/gin"
)

type profileService interface {
	GetPublic(ctx context.Context, username string) (*domain.Profile, error)
	GetOwn(ctx context.Context, userID string) (*domain.Profile, error)
	Save(ctx context.Context, in usecase.SaveProfileInput) (*domain.Profile, error)
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context, in usecase.ListProfilesInput) (usecase.ListProfilesResult, error)
}

type ProfileHandler struct {
	profiles profileService
	logger   *slog.Logger
}

func NewProfileHandler(profiles profileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger.With("component", "profile_handler")}
}

type linkRequest struct {
	Platform string `json:"platform" binding:"required,max=32"`
	URL      string `json:"url"      binding:"required,url,max=2048"`
}

type saveProfileRequest struct {
	Username        string        `json:"username"         binding:"required,min=3,max=30"`
	DisplayName     string        `json:"display_name"     binding:"max=256"`
	AvatarURL       string        `json:"avatar_url"       binding:"omitempty,url,max=2048"`
	Bio             string        `json:"bio"              binding:"max=2048"`
	Theme           string        `json:"theme"`
	AniListUsername string        `json:"anilist_username" binding:"max=20"`
	Links           []linkRequest `json:"links"            binding:"max=10,dive"`
}

type profileResponse struct {
	Username        string              `json:"username"`
	DisplayName     string              `json:"display_name"`
	AvatarURL       string              `json:"avatar_url"`
	Bio             string              `json:"bio"`
	Theme           string              `json:"theme"`
	AniListUsername string              `json:"anilist_username"`
	Links           []domain.SocialLink `json:"links"`
	URL             string              `json:"url"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type listProfilesResponse struct {
	Profiles   []profileResponse `json:"profiles"`
	NextCursor *string           `json:"next_cursor"`
}

func toProfileResponse(p *domain.Profile) profileResponse {
	links := p.Links
	if links == nil {
		links = []domain.SocialLink{}
	}
	return profileResponse{
		Username:        p.Username,
		DisplayName:     p.DisplayName,
		AvatarURL:       p.AvatarURL,
		Bio:             p.Bio,
		Theme:           p.Theme,
		AniListUsername: p.AniListUsername,
		Links:           links,
		URL:             "/" + p.Username,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// GET /api/profiles?cursor=&limit=
func (h *ProfileHandler) List(c *gin.Context) {
	var q struct {
		Cursor string `form:"cursor"`
		Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.profiles.List(c.Request.Context(), usecase.ListProfilesInput{Cursor: q.Cursor, Limit: q.Limit})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCursor})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "list profiles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	resp := listProfilesResponse{
		Profiles:   make([]profileResponse, 0, len(result.Profiles)),
		NextCursor: result.NextCursor,
	}
	for _, p := range result.Profiles {
		resp.Profiles = append(resp.Profiles, toProfileResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/profiles/:username
func (h *ProfileHandler) GetByUsername(c *gin.Context) {
	p, err := h.profiles.GetPublic(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.profileError(c, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(p))
}

// GET /api/me/profile
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	p, err := h.profiles.GetOwn(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		h.profileError(c, "get own profile", err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(p))
}

// PUT /api/me/profile
func (h *ProfileHandler) Save(c *gin.Context) {
	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	links := make([]domain.SocialLink, 0, len(req.Links))
	for _, l := range req.Links {
		links = append(links, domain.SocialLink{Platform: l.Platform, URL: l.URL})
	}

	p, err := h.profiles.Save(c.Request.Context(), usecase.SaveProfileInput{
		UserID:          c.GetString(middleware.UserIDKey),
		Username:        req.Username,
		DisplayName:     req.DisplayName,
		AvatarURL:       req.AvatarURL,
		Bio:             req.Bio,
		Theme:           req.Theme,
		AniListUsername: req.AniListUsername,
		Links:           links,
	})
	if err != nil {
		h.profileError(c, "save profile", err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(p))
}

// DELETE /api/me/profile
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context(), c.GetString(middleware.UserIDKey)); err != nil {
		h.profileError(c, "delete profile", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// validationErrors map to 400 with the domain message.
var validationErrors = []error{
	domain.ErrInvalidUsername,
	domain.ErrReservedUsername,
	domain.ErrInvalidLinks,
	domain.ErrBioTooLong,
	domain.ErrNameTooLong,
	domain.ErrInvalidTheme,
	domain.ErrInvalidAvatar,
	domain.ErrInvalidAniList,
}

func (h *ProfileHandler) profileError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errProfileNotFound})
		return
	case errors.Is(err, domain.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": errUsernameTaken})
		return
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	h.logger.ErrorContext(c.Request.Context(), op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
}
