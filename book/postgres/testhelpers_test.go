//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/marcelsud/bookstore/book"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

/* Test helpers for PostgreSQL with testcontainers: a real postgres in
 * Docker, one per test, cleaned up on exit. Run with:
 * go test -tags integration
 */

const (
	defaultDatabase = "testdb"
	defaultUser     = "testuser"
	defaultPassword = "testpass"
)

// SetupPostgresRepository starts a PostgreSQL container, creates the books
// table and returns a connected repository plus a cleanup function.
func SetupPostgresRepository(t *testing.T, ctx context.Context) (*Repository, func()) {
	t.Helper()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(defaultDatabase),
		tcpostgres.WithUsername(defaultUser),
		tcpostgres.WithPassword(defaultPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	repo, err := NewRepository(ctx, connStr, 10*time.Second)
	require.NoError(t, err)

	require.NoError(t, repo.CreateTable(ctx))

	cleanup := func() {
		_ = repo.Close(ctx)
		_ = container.Terminate(ctx)
	}
	return repo, cleanup
}

// CleanupBooks removes all rows and restarts the id sequence.
func CleanupBooks(t *testing.T, ctx context.Context, repo *Repository) {
	t.Helper()

	_, err := repo.pool.Exec(ctx, "TRUNCATE TABLE books RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

// PopulateSampleBooks inserts a few rows and returns their ids.
func PopulateSampleBooks(t *testing.T, ctx context.Context, repo *Repository) []string {
	t.Helper()

	samples := []book.Book{
		{Title: "Neuromancer", Author: "William Gibson", Pages: 271, Rating: 7.5, Genre: "Cyberpunk"},
		{Title: "Dune", Author: "Frank Herbert", Pages: 412, Rating: 8.5, Genre: "Science Fiction"},
		{Title: "1984", Author: "George Orwell", Pages: 328, Rating: 9, Genre: "Dystopian"},
	}

	ids := make([]string, 0, len(samples))
	for _, b := range samples {
		id, err := repo.Insert(ctx, b)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}
