package book

import "context"

/* Small interfaces, composed. They abstract behavior, not things, and are
 * written for the users of the API. Both storage adapters (document and
 * relational) implement Repository; neither leaks its native key type.
 */

type Reader interface {
	Select(ctx context.Context, id string) (Book, error)
	SelectPage(ctx context.Context, page Page) ([]Book, error)
}

type Writer interface {
	// Insert stores a new book and returns the identifier the backend
	// assigned to it.
	Insert(ctx context.Context, b Book) (string, error)
	// Update applies the supplied fields to the stored record. Fields
	// absent from the patch are left untouched.
	Update(ctx context.Context, id string, p Patch) error
	Delete(ctx context.Context, id string) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
