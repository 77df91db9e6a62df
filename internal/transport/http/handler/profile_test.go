package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/transport/http/handler"
	"github.com/ErlanBelekov/kumo-site/internal/transport/http/middleware"
	"github.com/ErlanBelekov/kumo-site/internal/usecase"
	"github.com/gin-gonic/gin"
)

const testUserID = "user-1"

func newProfileEngine(f *fakeProfiles) *gin.Engine {
	h := handler.NewProfileHandler(f, testLogger)
	r := gin.New()
	r.GET("/api/profiles", h.List)
	r.GET("/api/profiles/:username", h.GetByUsername)

	// Stand-in for the Auth middleware.
	me := r.Group("/api/me", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, testUserID)
		c.Next()
	})
	me.GET("/profile", h.GetOwn)
	me.PUT("/profile", h.Save)
	me.DELETE("/profile", h.Delete)
	return r
}

var hikari = &domain.Profile{
	ID:        "p-1",
	UserID:    testUserID,
	Username:  "hikari",
	Theme:     "sakura",
	CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
}

func TestGetByUsername(t *testing.T) {
	f := &fakeProfiles{
		getPublic: func(_ context.Context, username string) (*domain.Profile, error) {
			if username == "hikari" {
				return hikari, nil
			}
			return nil, domain.ErrProfileNotFound
		},
	}
	r := newProfileEngine(f)

	w := do(r, http.MethodGet, "/api/profiles/hikari", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["url"] != "/hikari" {
		t.Errorf("url = %v", body["url"])
	}
	if links, ok := body["links"].([]any); !ok || len(links) != 0 {
		t.Errorf("links = %v, want empty array", body["links"])
	}
	if _, leaked := body["user_id"]; leaked {
		t.Error("user_id must not be exposed")
	}

	if w := do(r, http.MethodGet, "/api/profiles/ghost", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing profile status = %d, want 404", w.Code)
	}
}

func TestSave_UsesAuthenticatedUser(t *testing.T) {
	var got usecase.SaveProfileInput
	f := &fakeProfiles{
		save: func(_ context.Context, in usecase.SaveProfileInput) (*domain.Profile, error) {
			got = in
			return &domain.Profile{UserID: in.UserID, Username: in.Username, Links: in.Links}, nil
		},
	}
	body := `{"username":"hikari","theme":"midnight","links":[{"platform":"X","url":"https://x.com/hikari"}]}`
	w := do(newProfileEngine(f), http.MethodPut, "/api/me/profile", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if got.UserID != testUserID || got.Theme != "midnight" || len(got.Links) != 1 {
		t.Errorf("input = %+v", got)
	}
}

func TestSave_BindingErrors_Return400(t *testing.T) {
	for _, body := range []string{
		`{}`,
		`{"username":"hikari","avatar_url":"not a url"}`,
		`{"username":"hikari","links":[{"platform":"","url":"https://x.com"}]}`,
	} {
		w := do(newProfileEngine(&fakeProfiles{}), http.MethodPut, "/api/me/profile", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestSave_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrUsernameTaken, http.StatusConflict},
		{domain.ErrReservedUsername, http.StatusBadRequest},
		{domain.ErrInvalidTheme, http.StatusBadRequest},
		{fmt.Errorf("%w: link 0", domain.ErrInvalidLinks), http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		f := &fakeProfiles{
			save: func(_ context.Context, _ usecase.SaveProfileInput) (*domain.Profile, error) { return nil, tc.err },
		}
		w := do(newProfileEngine(f), http.MethodPut, "/api/me/profile", `{"username":"hikari"}`)
		if w.Code != tc.want {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}

func TestGetOwn_NotFound(t *testing.T) {
	f := &fakeProfiles{
		getOwn: func(_ context.Context, userID string) (*domain.Profile, error) {
			if userID != testUserID {
				t.Errorf("userID = %q", userID)
			}
			return nil, domain.ErrProfileNotFound
		},
	}
	w := do(newProfileEngine(f), http.MethodGet, "/api/me/profile", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDelete_Returns204(t *testing.T) {
	f := &fakeProfiles{
		delete: func(_ context.Context, _ string) error { return nil },
	}
	w := do(newProfileEngine(f), http.MethodDelete, "/api/me/profile", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}

func TestList_CursorHandling(t *testing.T) {
	next := "next-cursor"
	f := &fakeProfiles{
		list: func(_ context.Context, in usecase.ListProfilesInput) (usecase.ListProfilesResult, error) {
			if in.Cursor == "bad" {
				return usecase.ListProfilesResult{}, domain.ErrInvalidCursor
			}
			return usecase.ListProfilesResult{Profiles: []*domain.Profile{hikari}, NextCursor: &next}, nil
		},
	}
	r := newProfileEngine(f)

	w := do(r, http.MethodGet, "/api/profiles?limit=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Profiles   []map[string]any `json:"profiles"`
		NextCursor *string          `json:"next_cursor"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Profiles) != 1 || body.NextCursor == nil || *body.NextCursor != next {
		t.Errorf("unexpected body %s", w.Body.String())
	}

	if w := do(r, http.MethodGet, "/api/profiles?cursor=bad", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad cursor status = %d, want 400", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/profiles?limit=1000", ""); w.Code != http.StatusBadRequest {
		t.Errorf("limit status = %d, want 400", w.Code)
	}
}
