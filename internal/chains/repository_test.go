package chains_test

import (
	"bytes"
	"context"
	"database/sql/driver"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/promptchain/internal/chains"
	"github.com/JaimeStill/promptchain/internal/prompts"
	"github.com/JaimeStill/promptchain/pkg/lifecycle"
	"github.com/JaimeStill/promptchain/pkg/storage"
)

type fakeStorage struct {
	blobs   map[string][]byte
	deleted []string
}

func (f *fakeStorage) Start(lc *lifecycle.Coordinator) error { return nil }

func (f *fakeStorage) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.blobs[key] = data
	return nil
}

func (f *fakeStorage) Download(ctx context.Context, key string) (*storage.Blob, error) {
	data, ok := f.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.Blob{Body: io.NopCloser(bytes.NewReader(data)), ContentType: "image/png"}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	if _, ok := f.blobs[key]; !ok {
		return storage.ErrNotFound
	}
	delete(f.blobs, key)
	f.deleted = append(f.deleted, key)
	return nil
}

var chainColumns = []string{
	"id", "name", "description", "tags", "preview_image", "created_at", "updated_at",
	"v_id", "version", "base_prompt", "negative_prompt", "modules", "params", "v_created_at",
}

const storedParams = `{"width":832,"height":1216,"steps":28,"scale":5,"sampler":"k_euler_ancestral"}`

func newRepo(t *testing.T) (chains.System, sqlmock.Sqlmock, *fakeStorage) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := &fakeStorage{blobs: map[string][]byte{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return chains.New(db, store, logger), mock, store
}

func chainRow(id uuid.UUID, preview driver.Value, version int) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id.String(), "Heroine", "portraits", `["anime"]`, preview, now, now,
		uuid.NewString(), int64(version), "masterpiece, {character}", "lowres",
		`[{"id":"m1","name":"Lighting","content":"cinematic lighting","isActive":true}]`,
		storedParams, now,
	}
}

func expectLockAndAppend(mock sqlmock.Sqlmock, chainID uuid.UUID, next int) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM chains WHERE id = $1 FOR UPDATE")).
		WithArgs(chainID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(chainID.String()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(version), 0) + 1 FROM versions WHERE chain_id = $1")).
		WithArgs(chainID).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(int64(next)))
}

func TestCreateInsertsVersionOne(t *testing.T) {
	sys, mock, _ := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO chains")).
		WithArgs(sqlmock.AnyArg(), "Heroine", "portraits", "[]", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO versions")).
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), 1,
			"masterpiece, best quality, {character}", "lowres, bad anatomy",
			sqlmock.AnyArg(), storedParams, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := sys.Create(context.Background(), chains.CreateCommand{Name: "Heroine", Description: "portraits"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequiresName(t *testing.T) {
	sys, mock, _ := newRepo(t)

	_, err := sys.Create(context.Background(), chains.CreateCommand{Name: "   "})
	assert.ErrorIs(t, err, chains.ErrInvalidName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRollsBackWhenVersionInsertFails(t *testing.T) {
	sys, mock, _ := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO chains")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO versions")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := sys.Create(context.Background(), chains.CreateCommand{Name: "Heroine"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmptyCommandTouchesNothing(t *testing.T) {
	sys, mock, _ := newRepo(t)

	err := sys.Update(context.Background(), uuid.New(), chains.UpdateCommand{})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNameOnly(t *testing.T) {
	sys, mock, _ := newRepo(t)
	id := uuid.New()
	name := "Renamed"

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE chains SET name = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(name, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, sys.Update(context.Background(), id, chains.UpdateCommand{Name: &name}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmptyPreviewClears(t *testing.T) {
	sys, mock, _ := newRepo(t)
	id := uuid.New()
	empty := ""

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE chains SET preview_image = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(nil, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, sys.Update(context.Background(), id, chains.UpdateCommand{PreviewImage: &empty}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingChain(t *testing.T) {
	sys, mock, _ := newRepo(t)
	id := uuid.New()
	desc := "x"

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE chains SET description = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := sys.Update(context.Background(), id, chains.UpdateCommand{Description: &desc})
	assert.ErrorIs(t, err, chains.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRejectsBlankName(t *testing.T) {
	sys, mock, _ := newRepo(t)
	blank := " "

	err := sys.Update(context.Background(), uuid.New(), chains.UpdateCommand{Name: &blank})
	assert.ErrorIs(t, err, chains.ErrInvalidName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVersionSequentialNumbering(t *testing.T) {
	sys, mock, _ := newRepo(t)
	chainID := uuid.New()

	for next := 2; next <= 4; next++ {
		mock.ExpectBegin()
		expectLockAndAppend(mock, chainID, next)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO versions")).
			WithArgs(sqlmock.AnyArg(), chainID, next, "base", "neg", "[]", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE chains SET updated_at = $1 WHERE id = $2")).
			WithArgs(sqlmock.AnyArg(), chainID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	for want := 2; want <= 4; want++ {
		created, err := sys.CreateVersion(context.Background(), chainID, chains.CreateVersionCommand{
			BasePrompt:     "base",
			NegativePrompt: "neg",
		})
		require.NoError(t, err)
		assert.Equal(t, want, created.Version)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVersionRetriesOnConflict(t *testing.T) {
	sys, mock, _ := newRepo(t)
	chainID := uuid.New()

	mock.ExpectBegin()
	expectLockAndAppend(mock, chainID, 2)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO versions")).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	expectLockAndAppend(mock, chainID, 3)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO versions")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE chains SET updated_at")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := sys.CreateVersion(context.Background(), chainID, chains.CreateVersionCommand{})
	require.NoError(t, err)
	assert.Equal(t, 3, created.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVersionConflictExhaustsAttempts(t *testing.T) {
	sys, mock, _ := newRepo(t)
	chainID := uuid.New()

	for range 3 {
		mock.ExpectBegin()
		expectLockAndAppend(mock, chainID, 2)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO versions")).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()
	}

	_, err := sys.CreateVersion(context.Background(), chainID, chains.CreateVersionCommand{})
	assert.ErrorIs(t, err, chains.ErrVersionConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVersionMissingChain(t *testing.T) {
	sys, mock, _ := newRepo(t)
	chainID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM chains WHERE id = $1 FOR UPDATE")).
		WithArgs(chainID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := sys.CreateVersion(context.Background(), chainID, chains.CreateVersionCommand{})
	assert.ErrorIs(t, err, chains.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVersionRejectsUnknownPosition(t *testing.T) {
	sys, mock, _ := newRepo(t)

	_, err := sys.CreateVersion(context.Background(), uuid.New(), chains.CreateVersionCommand{
		Modules: []prompts.Module{{Content: "x", Position: "middle"}},
	})
	assert.ErrorIs(t, err, prompts.ErrInvalidPosition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDecodesLatestVersionJoin(t *testing.T) {
	sys, mock, _ := newRepo(t)
	withVersion := uuid.New()
	bare := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY version DESC LIMIT 1 ) lv ON true ORDER BY c.updated_at DESC")).
		WillReturnRows(sqlmock.NewRows(chainColumns).
			AddRow(chainRow(withVersion, nil, 3)...).
			AddRow(bare.String(), "Empty", "", "", nil, now, now, nil, nil, nil, nil, nil, nil, nil))

	list, err := sys.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	first := list[0]
	require.NotNil(t, first.LatestVersion)
	assert.Equal(t, 3, first.LatestVersion.Version)
	assert.Equal(t, withVersion, first.LatestVersion.ChainID)
	assert.Equal(t, []string{"anime"}, first.Tags)
	require.Len(t, first.LatestVersion.Modules, 1)
	assert.Equal(t, "cinematic lighting", first.LatestVersion.Modules[0].Content)
	assert.Equal(t, 832, first.LatestVersion.Params.Width)
	assert.Equal(t, "masterpiece, {character}, cinematic lighting",
		prompts.CompileDefault(first.LatestVersion.Source(), ""))

	second := list[1]
	assert.Nil(t, second.LatestVersion)
	assert.Empty(t, second.Tags)
	assert.NotNil(t, second.Tags)
	assert.Nil(t, second.PreviewImage)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCorruptBlob(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(row []driver.Value)
	}{
		{"modules", func(row []driver.Value) { row[11] = "{not json" }},
		{"params", func(row []driver.Value) { row[12] = "[1,2" }},
		{"tags", func(row []driver.Value) { row[3] = `{"a":1}` }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, mock, _ := newRepo(t)

			row := chainRow(uuid.New(), nil, 1)
			tt.mutate(row)
			mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(chainColumns).AddRow(row...))

			_, err := sys.List(context.Background())
			assert.ErrorIs(t, err, chains.ErrCorruptRecord)
		})
	}
}

func TestFindNotFound(t *testing.T) {
	sys, mock, _ := newRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(chainColumns))

	_, err := sys.Find(context.Background(), id)
	assert.ErrorIs(t, err, chains.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionsAscending(t *testing.T) {
	sys, mock, _ := newRepo(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(chainColumns).AddRow(chainRow(id, nil, 2)...))
	mock.ExpectQuery(regexp.QuoteMeta("FROM public.versions v WHERE v.chain_id = $1 ORDER BY v.version ASC")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "chain_id", "version", "base_prompt", "negative_prompt", "modules", "params", "created_at",
		}).
			AddRow(uuid.NewString(), id.String(), int64(1), "a", "", "[]", "{}", now).
			AddRow(uuid.NewString(), id.String(), int64(2), "b", "", "", "", now))

	versions, err := sys.Versions(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].Version)
	assert.Equal(t, 2, versions[1].Version)
	assert.NotNil(t, versions[1].Modules)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRemovesStoredPreview(t *testing.T) {
	sys, mock, store := newRepo(t)
	id := uuid.New()
	key := chains.PreviewPrefix + id.String() + "/old.png"
	store.blobs[key] = []byte("png")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM chains WHERE id = $1 RETURNING preview_image")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"preview_image"}).AddRow(key))
	mock.ExpectCommit()

	require.NoError(t, sys.Delete(context.Background(), id))
	assert.Equal(t, []string{key}, store.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLeavesExternalPreview(t *testing.T) {
	sys, mock, store := newRepo(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM chains")).
		WillReturnRows(sqlmock.NewRows([]string{"preview_image"}).AddRow("https://cdn.example/p.png"))
	mock.ExpectCommit()

	require.NoError(t, sys.Delete(context.Background(), id))
	assert.Empty(t, store.deleted)
}

func TestDeleteMissingChain(t *testing.T) {
	sys, mock, _ := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM chains")).
		WillReturnRows(sqlmock.NewRows([]string{"preview_image"}))
	mock.ExpectRollback()

	err := sys.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, chains.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPreviewReplacesPrevious(t *testing.T) {
	sys, mock, store := newRepo(t)
	id := uuid.New()
	oldKey := chains.PreviewPrefix + id.String() + "/old.png"
	store.blobs[oldKey] = []byte("old")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(chainColumns).AddRow(chainRow(id, oldKey, 1)...))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE chains SET preview_image = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(chainColumns).AddRow(chainRow(id, "previews/new.png", 1)...))

	chain, err := sys.SetPreview(context.Background(), id, chains.PreviewCommand{
		Data:        []byte("\x89PNG"),
		ContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, id, chain.ID)

	assert.Equal(t, []string{oldKey}, store.deleted)
	require.Len(t, store.blobs, 1)
	for key := range store.blobs {
		assert.True(t, strings.HasPrefix(key, chains.PreviewPrefix+id.String()+"/"))
		assert.True(t, strings.HasSuffix(key, ".png"))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPreviewRemovesUploadWhenUpdateFails(t *testing.T) {
	sys, mock, store := newRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WillReturnRows(sqlmock.NewRows(chainColumns).AddRow(chainRow(id, nil, 1)...))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE chains SET preview_image")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := sys.SetPreview(context.Background(), id, chains.PreviewCommand{
		Data:        []byte("jpeg"),
		ContentType: "image/jpeg",
	})
	assert.Error(t, err)
	assert.Empty(t, store.blobs)
	assert.Len(t, store.deleted, 1)
}

func TestSetPreviewRejectsNonImage(t *testing.T) {
	sys, mock, _ := newRepo(t)

	_, err := sys.SetPreview(context.Background(), uuid.New(), chains.PreviewCommand{
		Data:        []byte("hello"),
		ContentType: "text/plain",
	})
	assert.ErrorIs(t, err, chains.ErrInvalidPreview)
	assert.NoError(t, mock.ExpectationsWereMet())
}
