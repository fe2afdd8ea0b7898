package chains

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/JaimeStill/promptchain/internal/prompts"
	"github.com/JaimeStill/promptchain/pkg/query"
	"github.com/JaimeStill/promptchain/pkg/repository"
	"github.com/JaimeStill/promptchain/pkg/storage"
)

// PreviewPrefix is the storage key prefix for uploaded preview images.
const PreviewPrefix = "previews/"

const versionAttempts = 3

var previewExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
}

// New creates a chain repository implementing the System interface.
func New(db *sql.DB, store storage.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: store,
		logger:  logger.With("system", "chains"),
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, maxUploadSize)
}

func (r *repo) List(ctx context.Context) ([]Chain, error) {
	chains, err := repository.QueryMany(ctx, r.db, listChainsQuery, nil, scanChain)
	if err != nil {
		return nil, fmt.Errorf("query chains: %w", err)
	}
	return chains, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Chain, error) {
	c, err := repository.QueryOne(ctx, r.db, findChainQuery, []any{id}, scanChain)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrVersionConflict)
	}
	return &c, nil
}

func (r *repo) Versions(ctx context.Context, id uuid.UUID) ([]Version, error) {
	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	q, args := query.
		NewBuilder(versionProjection, versionSort).
		WhereEquals("ChainID", id).
		Build()

	versions, err := repository.QueryMany(ctx, r.db, q, args, scanVersion)
	if err != nil {
		return nil, fmt.Errorf("query versions: %w", err)
	}
	return versions, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Created, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	tmpl := DefaultVersion()
	modules, err := encodeJSON(tmpl.Modules)
	if err != nil {
		return nil, fmt.Errorf("encode modules: %w", err)
	}
	params, err := encodeJSON(tmpl.Params)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}

	id := uuid.New()
	now := time.Now().UTC()

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO chains(id, name, description, tags, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			id, cmd.Name, cmd.Description, "[]", now, now,
		); err != nil {
			return struct{}{}, fmt.Errorf("insert chain: %w", err)
		}

		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO versions(id, chain_id, version, base_prompt, negative_prompt, modules, params, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New(), id, 1, tmpl.BasePrompt, tmpl.NegativePrompt, modules, params, now,
		); err != nil {
			return struct{}{}, fmt.Errorf("insert initial version: %w", err)
		}

		return struct{}{}, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrVersionConflict)
	}

	r.logger.Info("chain created", "id", id, "name", cmd.Name)
	return &Created{ID: id}, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) error {
	if cmd.Empty() {
		return nil
	}
	if err := cmd.validate(); err != nil {
		return err
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if cmd.Name != nil {
		set("name", *cmd.Name)
	}
	if cmd.Description != nil {
		set("description", *cmd.Description)
	}
	if cmd.PreviewImage != nil {
		var preview any
		if *cmd.PreviewImage != "" {
			preview = *cmd.PreviewImage
		}
		set("preview_image", preview)
	}
	set("updated_at", time.Now().UTC())

	args = append(args, id)
	q := fmt.Sprintf(
		"UPDATE chains SET %s WHERE id = $%d",
		strings.Join(sets, ", "),
		len(args),
	)

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, args...)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrVersionConflict)
	}

	r.logger.Info("chain updated", "id", id)
	return nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	preview, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (sql.NullString, error) {
		return repository.QueryOne(
			ctx, tx,
			"DELETE FROM chains WHERE id = $1 RETURNING preview_image",
			[]any{id},
			scanNullString,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrVersionConflict)
	}

	if preview.Valid {
		r.deletePreview(ctx, preview.String)
	}

	r.logger.Info("chain deleted", "id", id)
	return nil
}

func (r *repo) CreateVersion(ctx context.Context, chainID uuid.UUID, cmd CreateVersionCommand) (*VersionCreated, error) {
	if err := prompts.ValidateModules(cmd.Modules); err != nil {
		return nil, err
	}

	if cmd.Modules == nil {
		cmd.Modules = []prompts.Module{}
	}
	modules, err := encodeJSON(cmd.Modules)
	if err != nil {
		return nil, fmt.Errorf("encode modules: %w", err)
	}
	params, err := encodeJSON(cmd.Params)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}

	var created VersionCreated
	err = retry.Do(
		func() error {
			result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (VersionCreated, error) {
				return r.appendVersion(ctx, tx, chainID, cmd, modules, params)
			})
			if err != nil {
				return err
			}
			created = result
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(versionAttempts),
		retry.Delay(10*time.Millisecond),
		retry.RetryIf(repository.IsDuplicate),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if repository.IsDuplicate(err) {
			r.logger.Warn("version assignment conflict", "chain_id", chainID, "attempts", versionAttempts)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrVersionConflict)
	}

	r.logger.Info("version created", "chain_id", chainID, "id", created.ID, "version", created.Version)
	return &created, nil
}

// appendVersion locks the parent chain row so concurrent appends to the same
// chain serialize, then inserts the next version number.
func (r *repo) appendVersion(
	ctx context.Context,
	tx *sql.Tx,
	chainID uuid.UUID,
	cmd CreateVersionCommand,
	modules, params string,
) (VersionCreated, error) {
	if _, err := repository.QueryScalar[uuid.UUID](
		ctx, tx,
		"SELECT id FROM chains WHERE id = $1 FOR UPDATE",
		chainID,
	); err != nil {
		return VersionCreated{}, err
	}

	next, err := repository.QueryScalar[int](
		ctx, tx,
		"SELECT COALESCE(MAX(version), 0) + 1 FROM versions WHERE chain_id = $1",
		chainID,
	)
	if err != nil {
		return VersionCreated{}, fmt.Errorf("next version: %w", err)
	}

	id := uuid.New()
	now := time.Now().UTC()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO versions(id, chain_id, version, base_prompt, negative_prompt, modules, params, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, chainID, next, cmd.BasePrompt, cmd.NegativePrompt, modules, params, now,
	); err != nil {
		return VersionCreated{}, err
	}

	if _, err := tx.ExecContext(
		ctx,
		"UPDATE chains SET updated_at = $1 WHERE id = $2",
		now, chainID,
	); err != nil {
		return VersionCreated{}, fmt.Errorf("touch chain: %w", err)
	}

	return VersionCreated{ID: id, Version: next}, nil
}

func (r *repo) SetPreview(ctx context.Context, id uuid.UUID, cmd PreviewCommand) (*Chain, error) {
	ext, ok := previewExtensions[cmd.ContentType]
	if !ok {
		return nil, ErrInvalidPreview
	}

	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s%s/%s%s", PreviewPrefix, id, uuid.New(), ext)
	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload preview: %w", err)
	}

	if err := r.Update(ctx, id, UpdateCommand{PreviewImage: &key}); err != nil {
		r.deletePreview(ctx, key)
		return nil, err
	}

	if current.PreviewImage != nil {
		r.deletePreview(ctx, *current.PreviewImage)
	}

	r.logger.Info("chain preview set", "id", id, "key", key)
	return r.Find(ctx, id)
}

// deletePreview removes a stored preview blob. Previews that are not
// storage keys (external urls, data urls) are left alone. Failures are logged.
func (r *repo) deletePreview(ctx context.Context, key string) {
	if !strings.HasPrefix(key, PreviewPrefix) {
		return
	}
	if err := r.storage.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		r.logger.Warn("preview blob delete failed", "key", key, "error", err)
	}
}

func scanNullString(s repository.Scanner) (sql.NullString, error) {
	var v sql.NullString
	err := s.Scan(&v)
	return v, err
}
