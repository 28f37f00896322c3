package seed

import (
	"fmt"
	"os"

	"github.com/marcelsud/bookstore/book"
	"gopkg.in/yaml.v3"
)

/* Loader reads a book catalog from a YAML file. Used by cmd/seed to
 * populate both stores and by cmd/validate-catalog to check a file
 * without touching any store.
 */

// Config represents the structure of catalog.yaml
type Config struct {
	Books []Entry `yaml:"books"`
}

// Entry represents a single book in the YAML file. Pages and Rating are
// pointers so an explicit zero is distinguishable from an omitted field.
type Entry struct {
	Title  string   `yaml:"title"`
	Author string   `yaml:"author"`
	Pages  *int     `yaml:"pages"`
	Rating *float64 `yaml:"rating"`
	Genre  string   `yaml:"genre"`
	Review string   `yaml:"review"`
}

func (e Entry) patch() book.Patch {
	p := book.Patch{
		Pages:  e.Pages,
		Rating: e.Rating,
	}
	if e.Title != "" {
		p.Title = &e.Title
	}
	if e.Author != "" {
		p.Author = &e.Author
	}
	if e.Genre != "" {
		p.Genre = &e.Genre
	}
	if e.Review != "" {
		p.Review = &e.Review
	}
	return p
}

// Loader holds the loaded catalog
type Loader struct {
	books []book.Book
}

// NewLoader creates an empty catalog loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and validates a catalog file. Every entry must satisfy the
// same create rule the API enforces.
func (l *Loader) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading catalog file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing catalog file: %w", err)
	}

	if len(cfg.Books) == 0 {
		return fmt.Errorf("catalog file %s contains no books", path)
	}

	books := make([]book.Book, 0, len(cfg.Books))
	for i, entry := range cfg.Books {
		p := entry.patch()
		if err := p.Complete(); err != nil {
			return fmt.Errorf("book %d: %w", i+1, err)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("book %d: %w", i+1, err)
		}
		books = append(books, p.Book())
	}

	l.books = books
	return nil
}

// List returns the loaded books
func (l *Loader) List() []book.Book {
	return l.books
}
