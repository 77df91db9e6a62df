package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/kumo-site/internal/domain"
	"github.com/ErlanBelekov/kumo-site/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `id, user_id, username, display_name, avatar_url, bio, theme,
	anilist_username, links, created_at, updated_at`

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE username = $1`, username)
	return scanProfile(row)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

// Upsert creates the user's profile or replaces its editable fields.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	links := p.Links
	if links == nil {
		links = []domain.SocialLink{}
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (
			user_id, username, display_name, avatar_url, bio, theme, anilist_username, links
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			username         = EXCLUDED.username,
			display_name     = EXCLUDED.display_name,
			avatar_url       = EXCLUDED.avatar_url,
			bio              = EXCLUDED.bio,
			theme            = EXCLUDED.theme,
			anilist_username = EXCLUDED.anilist_username,
			links            = EXCLUDED.links,
			updated_at       = NOW()
		RETURNING `+profileColumns,
		p.UserID, p.Username, p.DisplayName, p.AvatarURL, p.Bio, p.Theme, p.AniListUsername, links,
	)

	saved, err := scanProfile(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}
	return saved, nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) List(ctx context.Context, input repository.ListProfilesInput) ([]*domain.Profile, error) {
	var (
		args  []any
		where []string
	)

	if input.CursorTime != nil {
		args = append(args, *input.CursorTime, input.CursorID)
		where = append(where, fmt.Sprintf("(created_at, id) < ($%d, $%d)", len(args)-1, len(args)))
	}
	args = append(args, input.Limit)

	query := `SELECT ` + profileColumns + ` FROM profiles`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Username, &p.DisplayName, &p.AvatarURL, &p.Bio, &p.Theme,
		&p.AniListUsername, &p.Links, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}
