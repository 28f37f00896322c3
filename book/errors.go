package book

import "errors"

/* Domain errors are defined here, not inside each storage adapter, so both
 * endpoint families map the same outcomes to the same statuses.
 */

var (
	// ErrNotFound is returned by every repository when no record matches
	// the given identifier.
	ErrNotFound = errors.New("book not found")

	// ErrInvalidID is returned when an identifier does not conform to the
	// backend's key format. Repositories must return it before issuing any
	// storage call.
	ErrInvalidID = errors.New("not a valid book id")
)

// InvalidBookError reports a payload that fails the validation rules. The
// reason is safe to return to clients.
type InvalidBookError struct {
	Reason string
}

func (e InvalidBookError) Error() string {
	return e.Reason
}
