package chains_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/promptchain/cmd/migrate/migrations"
	"github.com/JaimeStill/promptchain/internal/chains"
)

// envTestDatabaseURL points the Postgres tests at an existing database
// instead of starting a container.
const envTestDatabaseURL = "PROMPTCHAIN_TEST_DATABASE_URL"

func postgresDB(t *testing.T) *sql.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres tests skipped in short mode")
	}

	ctx := context.Background()
	dsn := os.Getenv(envTestDatabaseURL)
	if dsn == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)

		ctr, err := postgres.Run(ctx, "postgres:16-alpine",
			postgres.WithDatabase("promptchain"),
			postgres.WithUsername("promptchain"),
			postgres.WithPassword("promptchain"),
			postgres.BasicWaitStrategies(),
		)
		testcontainers.CleanupContainer(t, ctr)
		require.NoError(t, err)

		dsn, err = ctr.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)
	}

	m, err := migrations.New(dsn)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}
	m.Close()

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.PingContext(ctx))

	return db
}

func TestRepositoryPostgres(t *testing.T) {
	db := postgresDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sys := chains.New(db, &fakeStorage{blobs: map[string][]byte{}}, logger)
	ctx := context.Background()

	t.Run("latest version is the highest number despite clock skew", func(t *testing.T) {
		created, err := sys.Create(ctx, chains.CreateCommand{Name: "skewed"})
		require.NoError(t, err)

		for range 2 {
			_, err := sys.CreateVersion(ctx, created.ID, chains.CreateVersionCommand{BasePrompt: "next"})
			require.NoError(t, err)
		}

		_, err = db.ExecContext(ctx,
			`UPDATE versions SET created_at = NOW() + INTERVAL '1 day' WHERE chain_id = $1 AND version = 2`,
			created.ID,
		)
		require.NoError(t, err)

		chain, err := sys.Find(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, chain.LatestVersion)
		assert.Equal(t, 3, chain.LatestVersion.Version)

		list, err := sys.List(ctx)
		require.NoError(t, err)
		var listed *chains.Chain
		for i := range list {
			if list[i].ID == created.ID {
				listed = &list[i]
			}
		}
		require.NotNil(t, listed, "chain missing from list")
		require.NotNil(t, listed.LatestVersion)
		assert.Equal(t, 3, listed.LatestVersion.Version)
	})

	t.Run("concurrent versions receive distinct numbers", func(t *testing.T) {
		const n = 8

		created, err := sys.Create(ctx, chains.CreateCommand{Name: "contended"})
		require.NoError(t, err)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			numbers []int
			errs    []error
		)
		for i := range n {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				res, err := sys.CreateVersion(ctx, created.ID, chains.CreateVersionCommand{
					BasePrompt: fmt.Sprintf("writer %d", i),
				})

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return
				}
				numbers = append(numbers, res.Version)
			}(i)
		}
		wg.Wait()

		require.Empty(t, errs)
		sort.Ints(numbers)

		want := make([]int, n)
		for i := range want {
			want[i] = i + 2
		}
		assert.Equal(t, want, numbers)

		versions, err := sys.Versions(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, versions, n+1)
		for i, v := range versions {
			assert.Equal(t, i+1, v.Version)
		}
	})
}
