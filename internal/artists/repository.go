package artists

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptchain/pkg/query"
	"github.com/JaimeStill/promptchain/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an artist repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "artists"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context, filters Filters) ([]Artist, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	q, args := qb.Build()
	artists, err := repository.QueryMany(ctx, r.db, q, args, scanArtist)
	if err != nil {
		return nil, fmt.Errorf("query artists: %w", err)
	}
	return artists, nil
}

func (r *repo) Save(ctx context.Context, cmd SaveCommand) (*Artist, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, ErrInvalidName
	}
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}

	q := `
		INSERT INTO artists(id, name, image_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, image_url = EXCLUDED.image_url
		RETURNING id, name, image_url`

	args := []any{cmd.ID, cmd.Name, cmd.ImageURL}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Artist, error) {
		return repository.QueryOne(ctx, tx, q, args, scanArtist)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("artist saved", "id", a.ID, "name", a.Name)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM artists WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("artist deleted", "id", id)
	return nil
}
