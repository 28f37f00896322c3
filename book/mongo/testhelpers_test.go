//go:build integration

package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/marcelsud/bookstore/book"
	"github.com/stretchr/testify/require"
	tcmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"
)

/* Test helpers for MongoDB with testcontainers: a real mongod in Docker,
 * one per test, cleaned up on exit. Run with: go test -tags integration
 */

const testDatabase = "testdb"

// SetupMongoRepository starts a MongoDB container and returns a connected
// repository plus a cleanup function.
func SetupMongoRepository(t *testing.T, ctx context.Context) (*Repository, func()) {
	t.Helper()

	container, err := tcmongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	repo, err := NewRepository(ctx, uri, testDatabase, 10*time.Second)
	require.NoError(t, err)

	cleanup := func() {
		_ = repo.Close(ctx)
		_ = container.Terminate(ctx)
	}
	return repo, cleanup
}

// PopulateSampleBooks inserts books whose author order differs from their
// insertion order, so sorting is observable.
func PopulateSampleBooks(t *testing.T, ctx context.Context, repo *Repository) []string {
	t.Helper()

	samples := []book.Book{
		{Title: "Neuromancer", Author: "William Gibson", Pages: 271, Rating: 7.5, Genre: "Cyberpunk"},
		{Title: "Dune", Author: "Frank Herbert", Pages: 412, Rating: 8.5, Genre: "Science Fiction"},
		{Title: "1984", Author: "George Orwell", Pages: 328, Rating: 9, Genre: "Dystopian"},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Pages: 310, Rating: 8, Genre: "Fantasy"},
	}

	ids := make([]string, 0, len(samples))
	for _, b := range samples {
		id, err := repo.Insert(ctx, b)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}
