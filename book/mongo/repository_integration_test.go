//go:build integration

package mongo

import (
	"context"
	"testing"

	"github.com/marcelsud/bookstore/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryIntegration(t *testing.T) {
	ctx := context.Background()
	repo, cleanup := SetupMongoRepository(t, ctx)
	defer cleanup()

	t.Run("insert assigns a 24-hex identifier and round-trips", func(t *testing.T) {
		id, err := repo.Insert(ctx, book.Book{
			Title:  "Dune",
			Author: "Frank Herbert",
			Pages:  412,
			Rating: 8.5,
			Genre:  "Science Fiction",
			Review: "a classic",
		})
		require.NoError(t, err)
		assert.Len(t, id, 24)

		got, err := repo.Select(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "Dune", got.Title)
		assert.Equal(t, 412, got.Pages)
		assert.Equal(t, 8.5, got.Rating)
		assert.Equal(t, "a classic", got.Review)

		require.NoError(t, repo.Delete(ctx, id))
	})

	t.Run("select of an absent id is not found", func(t *testing.T) {
		_, err := repo.Select(ctx, "66f1a2b3c4d5e6f7a8b9c0d1")
		assert.ErrorIs(t, err, book.ErrNotFound)
	})

	t.Run("pages are sorted by author and sized by the fixed page size", func(t *testing.T) {
		ids := PopulateSampleBooks(t, ctx, repo)
		defer func() {
			for _, id := range ids {
				_ = repo.Delete(ctx, id)
			}
		}()

		first, err := repo.SelectPage(ctx, book.ZeroBasedPage(""))
		require.NoError(t, err)
		require.Len(t, first, book.BooksPerPage)
		assert.Equal(t, "Frank Herbert", first[0].Author)
		assert.Equal(t, "George Orwell", first[1].Author)
		assert.Equal(t, "J.R.R. Tolkien", first[2].Author)

		second, err := repo.SelectPage(ctx, book.ZeroBasedPage("1"))
		require.NoError(t, err)
		require.Len(t, second, 1)
		assert.Equal(t, "William Gibson", second[0].Author)
	})

	t.Run("update merges only the supplied fields", func(t *testing.T) {
		id, err := repo.Insert(ctx, book.Book{
			Title: "1984", Author: "George Orwell", Pages: 328, Rating: 9, Genre: "Dystopian",
		})
		require.NoError(t, err)
		defer repo.Delete(ctx, id)

		rating := 9.5
		require.NoError(t, repo.Update(ctx, id, book.Patch{Rating: &rating}))

		got, err := repo.Select(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 9.5, got.Rating)
		assert.Equal(t, "1984", got.Title)
		assert.Equal(t, 328, got.Pages)
	})

	t.Run("update of an absent id is not found", func(t *testing.T) {
		title := "T"
		err := repo.Update(ctx, "66f1a2b3c4d5e6f7a8b9c0d1", book.Patch{Title: &title})
		assert.ErrorIs(t, err, book.ErrNotFound)
	})

	t.Run("delete twice is not found the second time", func(t *testing.T) {
		id, err := repo.Insert(ctx, book.Book{
			Title: "Tmp", Author: "A", Pages: 1, Rating: 1, Genre: "G",
		})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, id))
		assert.ErrorIs(t, repo.Delete(ctx, id), book.ErrNotFound)
	})

	t.Run("count follows inserts and deletes", func(t *testing.T) {
		before, err := repo.Count(ctx)
		require.NoError(t, err)

		id, err := repo.Insert(ctx, book.Book{
			Title: "Tmp", Author: "A", Pages: 1, Rating: 1, Genre: "G",
		})
		require.NoError(t, err)

		after, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before+1, after)

		require.NoError(t, repo.Delete(ctx, id))
	})
}
