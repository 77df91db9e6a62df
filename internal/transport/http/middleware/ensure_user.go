package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/repository"
	"github.com/gin-gonic/gin"
)

// EnsureUser runs after Auth. It mirrors the Supabase user into the users
// table so the profiles foreign key is always satisfied. A row that already
// carries the token's email is left alone.
func EnsureUser(repo repository.UserRepository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userID, email := c.GetString(UserIDKey), c.GetString(EmailKey)

		user, err := repo.FindByID(ctx, userID)
		switch {
		case err == nil && user.Email == email:
			c.Next()
			return
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			logger.ErrorContext(ctx, "ensure user lookup", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"error": "Internal server error"})
			return
		}

		if err := repo.Upsert(ctx, userID, email); err != nil {
			logger.ErrorContext(ctx, "ensure user upsert", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"error": "Internal server error"})
			return
		}
		c.Next()
	}
}
