package seed_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marcelsud/bookstore/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		path := writeCatalog(t, `
books:
  - title: Dune
    author: Frank Herbert
    pages: 412
    rating: 8.5
    genre: Science Fiction
  - title: "1984"
    author: George Orwell
    pages: 328
    rating: 9
    genre: Dystopian
    review: Bleak but essential.
`)

		loader := seed.NewLoader()
		require.NoError(t, loader.Load(path))

		books := loader.List()
		require.Len(t, books, 2)
		assert.Equal(t, "Dune", books[0].Title)
		assert.Equal(t, 8.5, books[0].Rating)
		assert.Empty(t, books[0].Review)
		assert.Equal(t, "Bleak but essential.", books[1].Review)
	})

	t.Run("zero pages is a present value", func(t *testing.T) {
		path := writeCatalog(t, `
books:
  - title: Pamphlet
    author: Anonymous
    pages: 0
    rating: 0
    genre: Essay
`)

		loader := seed.NewLoader()
		require.NoError(t, loader.Load(path))
		assert.Equal(t, 0, loader.List()[0].Pages)
	})

	t.Run("missing required field names the entry", func(t *testing.T) {
		path := writeCatalog(t, `
books:
  - title: Dune
    author: Frank Herbert
    pages: 412
    genre: Science Fiction
`)

		err := seed.NewLoader().Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "book 1")
		assert.Contains(t, err.Error(), "required fields")
	})

	t.Run("rating out of range is rejected", func(t *testing.T) {
		path := writeCatalog(t, `
books:
  - title: Dune
    author: Frank Herbert
    pages: 412
    rating: 11
    genre: Science Fiction
`)

		err := seed.NewLoader().Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "between 0 and 10")
	})

	t.Run("empty catalog is rejected", func(t *testing.T) {
		path := writeCatalog(t, "books: []\n")

		err := seed.NewLoader().Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no books")
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		err := seed.NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml is rejected", func(t *testing.T) {
		path := writeCatalog(t, "books:\n  - title: [broken\n")

		err := seed.NewLoader().Load(path)
		require.Error(t, err)
	})
}
