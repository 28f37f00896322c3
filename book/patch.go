package book

/* Presence is structural: a nil pointer means the field was absent from
 * the payload. Zero is a legitimate value for Pages and Rating, so the
 * rules never test truthiness, only presence and range.
 */

// Patch carries the fields of an incoming payload. It is used both for
// create (where it must be complete) and for update (where the document
// family accepts any subset and the relational family requires all
// required fields).
type Patch struct {
	Title  *string
	Author *string
	Pages  *int
	Rating *float64
	Genre  *string
	Review *string
}

// IsEmpty reports whether no field at all was supplied.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Pages == nil &&
		p.Rating == nil && p.Genre == nil && p.Review == nil
}

// Complete verifies that every required field is present. Review stays
// optional.
func (p Patch) Complete() error {
	if p.Title == nil || p.Author == nil || p.Pages == nil || p.Rating == nil || p.Genre == nil {
		return InvalidBookError{Reason: "please provide all the required fields: title, author, pages, rating, genre"}
	}
	return nil
}

// Validate checks the fields that are present. Absent fields are not an
// error here; callers that need all fields call Complete first.
func (p Patch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return InvalidBookError{Reason: "title must be a non-empty string"}
	}
	if p.Author != nil && *p.Author == "" {
		return InvalidBookError{Reason: "author must be a non-empty string"}
	}
	if p.Genre != nil && *p.Genre == "" {
		return InvalidBookError{Reason: "genre must be a non-empty string"}
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 10) {
		return InvalidBookError{Reason: "rating must be a number between 0 and 10"}
	}
	return nil
}

// Book materializes a complete patch. Callers must have run Complete and
// Validate first.
func (p Patch) Book() Book {
	b := Book{
		Title:  *p.Title,
		Author: *p.Author,
		Pages:  *p.Pages,
		Rating: *p.Rating,
		Genre:  *p.Genre,
	}
	if p.Review != nil {
		b.Review = *p.Review
	}
	return b
}
