package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marcelsud/bookstore/book"
)

// Repository is the relational implementation of book.Repository. Identity
// is a SERIAL integer, exposed as its decimal string rendering. Every
// query is parameterized; updates replace the supplied columns.
type Repository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewRepository opens a pgx pool against the given DSN and pings it before
// returning, so the caller only starts serving traffic against an
// established connection.
func NewRepository(ctx context.Context, dsn string, timeout time.Duration) (*Repository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}
	cfg.MaxConns = 25
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return &Repository{
		pool:    pool,
		timeout: timeout,
	}, nil
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

/* parseID runs before any storage call, so a non-integer identifier is a
 * client error, not a database type error surfacing as a 500.
 */
func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, book.ErrInvalidID
	}
	return n, nil
}

// Select fetches one book by its integer identifier.
func (r *Repository) Select(ctx context.Context, id string) (book.Book, error) {
	key, err := parseID(id)
	if err != nil {
		return book.Book{}, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := "SELECT id, title, author, pages, rating, genre, review FROM books WHERE id = $1"

	var (
		b     book.Book
		rowID int64
	)
	err = r.pool.QueryRow(ctx, query, key).Scan(
		&rowID,
		&b.Title,
		&b.Author,
		&b.Pages,
		&b.Rating,
		&b.Genre,
		&b.Review,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}

	b.ID = strconv.FormatInt(rowID, 10)
	return b, nil
}

// SelectPage returns one page of books ordered by id, applying the
// computed offset and limit to the issued query.
func (r *Repository) SelectPage(ctx context.Context, page book.Page) ([]book.Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := "SELECT id, title, author, pages, rating, genre, review FROM books ORDER BY id OFFSET $1 LIMIT $2"

	rows, err := r.pool.Query(ctx, query, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		var (
			b     book.Book
			rowID int64
		)
		if err := rows.Scan(&rowID, &b.Title, &b.Author, &b.Pages, &b.Rating, &b.Genre, &b.Review); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		b.ID = strconv.FormatInt(rowID, 10)
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}

	return books, nil
}

// Insert stores a new book and returns the identifier assigned by the
// database.
func (r *Repository) Insert(ctx context.Context, b book.Book) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO books (title, author, pages, rating, genre, review)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query, b.Title, b.Author, b.Pages, b.Rating, b.Genre, b.Review).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("inserting book: %w", err)
	}

	return strconv.FormatInt(id, 10), nil
}

// Update sets the supplied columns on the matching row. The relational
// handler requires a complete payload, so in practice this is a
// full-column replace.
func (r *Repository) Update(ctx context.Context, id string, p book.Patch) error {
	key, err := parseID(id)
	if err != nil {
		return err
	}

	clauses := []string{}
	args := []any{}
	argn := 1
	set := func(column string, value any) {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, argn))
		args = append(args, value)
		argn++
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Author != nil {
		set("author", *p.Author)
	}
	if p.Pages != nil {
		set("pages", *p.Pages)
	}
	if p.Rating != nil {
		set("rating", *p.Rating)
	}
	if p.Genre != nil {
		set("genre", *p.Genre)
	}
	if p.Review != nil {
		set("review", *p.Review)
	}
	if len(clauses) == 0 {
		return book.InvalidBookError{Reason: "no fields to update"}
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("UPDATE books SET %s WHERE id = $%d", strings.Join(clauses, ", "), argn)
	args = append(args, key)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrNotFound
	}
	return nil
}

// Delete removes one book by its integer identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	key, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, "DELETE FROM books WHERE id = $1", key)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrNotFound
	}
	return nil
}

// Count returns the number of stored books. Used by the metrics collector.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM books").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return n, nil
}

// Close releases the pool.
func (r *Repository) Close(ctx context.Context) error {
	if r.pool != nil {
		r.pool.Close()
	}
	return nil
}

// CreateTable creates the books table. Useful for tests and local setup.
func (r *Repository) CreateTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS books (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			pages INTEGER NOT NULL,
			rating DOUBLE PRECISION NOT NULL,
			genre TEXT NOT NULL,
			review TEXT NOT NULL DEFAULT ''
		)
	`

	_, err := r.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	return nil
}

// DropTable removes the books table. Useful for tests.
func (r *Repository) DropTable(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DROP TABLE IF EXISTS books CASCADE")
	if err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}
	return nil
}
