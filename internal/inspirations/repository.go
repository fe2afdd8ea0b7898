package inspirations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptchain/pkg/query"
	"github.com/JaimeStill/promptchain/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an inspiration repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "inspirations"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context, filters Filters) ([]Inspiration, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	q, args := qb.Build()
	items, err := repository.QueryMany(ctx, r.db, q, args, scanInspiration)
	if err != nil {
		return nil, fmt.Errorf("query inspirations: %w", err)
	}
	return items, nil
}

func (r *repo) Save(ctx context.Context, cmd SaveCommand) (*Inspiration, error) {
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, ErrInvalidTitle
	}
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}
	if cmd.CreatedAt.IsZero() {
		cmd.CreatedAt = time.Now().UTC()
	}

	q := `
		INSERT INTO inspirations(id, title, image_url, prompt, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
			image_url = EXCLUDED.image_url,
			prompt = EXCLUDED.prompt,
			created_at = EXCLUDED.created_at
		RETURNING id, title, image_url, prompt, created_at`

	args := []any{cmd.ID, cmd.Title, cmd.ImageURL, cmd.Prompt, cmd.CreatedAt}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Inspiration, error) {
		return repository.QueryOne(ctx, tx, q, args, scanInspiration)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("inspiration saved", "id", i.ID, "title", i.Title)
	return &i, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM inspirations WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("inspiration deleted", "id", id)
	return nil
}
