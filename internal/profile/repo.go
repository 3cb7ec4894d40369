package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/healthstats/internal/telemetry/tracing"
)

const createProfileTableSQL = `
CREATE TABLE IF NOT EXISTS user_profile
(
    user_id    VARCHAR PRIMARY KEY,
    data       JSONB       NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);`

// Repo keeps each profile as a single JSONB document.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createProfileTableSQL); err != nil {
		return fmt.Errorf("create user_profile table: %w", err)
	}
	return nil
}

// Load returns nil, nil when the user has no profile yet.
// A stored document that can't be decoded yields ErrCorruptProfile.
func (r *Repo) Load(ctx context.Context, userID string) (_ *UserProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	var data []byte
	err = r.db.QueryRow(
		ctx,
		`SELECT data FROM user_profile WHERE user_id = $1`,
		userID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetAttributes(attribute.Bool("found", false))
			return nil, nil
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}

	p, err := decodeProfile(data)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Bool("found", true))
	return p, nil
}

func (r *Repo) Save(ctx context.Context, p *UserProfile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user_id", p.UserID),
		attribute.Int("progress_entries", len(p.ProgressHistory)),
	)

	if p.UserID == "" {
		return errors.New("save profile: empty user id")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_profile (user_id, data, updated_at)
				VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
				SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at;`,
		p.UserID, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}

func decodeProfile(data []byte) (*UserProfile, error) {
	var p UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptProfile, err)
	}
	return &p, nil
}
