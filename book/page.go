package book

import "strconv"

// BooksPerPage is the fixed page size of the document-store listing.
const BooksPerPage = 3

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Page is the window applied to a list query. Both repositories execute it
// as issued; the ordering itself is fixed per backend, never
// client-controlled.
type Page struct {
	Skip  int64
	Limit int64
}

// ZeroBasedPage derives a page from the untrusted 0-based `p` query
// parameter of the document family. Unparseable or negative input falls
// back to the first page. The page size is fixed at BooksPerPage.
func ZeroBasedPage(raw string) Page {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		n = 0
	}
	return Page{
		Skip:  int64(n) * BooksPerPage,
		Limit: BooksPerPage,
	}
}

// OneBasedPage derives a page from the untrusted 1-based `page` and
// `limit` query parameters of the relational family. Unparseable or
// out-of-range input falls back to the defaults.
func OneBasedPage(pageRaw, limitRaw string) Page {
	page, err := strconv.Atoi(pageRaw)
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(limitRaw)
	if err != nil || limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return Page{
		Skip:  int64(page-1) * int64(limit),
		Limit: int64(limit),
	}
}
