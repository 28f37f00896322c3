package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/bookstore/book"
)

/* HTTP layer DTOs. Separate from the domain entity so json tags stay out
 * of the business layer. Required fields are pointers: a zero pages or
 * rating is present, a nil one is absent.
 */

type bookRequest struct {
	Title  *string  `json:"title"`
	Author *string  `json:"author"`
	Pages  *int     `json:"pages"`
	Rating *float64 `json:"rating"`
	Genre  *string  `json:"genre"`
	Review *string  `json:"review"`
}

func (br bookRequest) patch() book.Patch {
	return book.Patch{
		Title:  br.Title,
		Author: br.Author,
		Pages:  br.Pages,
		Rating: br.Rating,
		Genre:  br.Genre,
		Review: br.Review,
	}
}

type bookResponse struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Pages  int     `json:"pages"`
	Rating float64 `json:"rating"`
	Genre  string  `json:"genre"`
	Review string  `json:"review,omitempty"`
}

func newBookResponse(b book.Book) bookResponse {
	return bookResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Pages:  b.Pages,
		Rating: b.Rating,
		Genre:  b.Genre,
		Review: b.Review,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

/* respondError is the single place where domain outcomes become statuses:
 * invalid payload and malformed id are client errors, a missing record is
 * 404, anything else is a generic 500 with the cause kept in the request
 * log for operators.
 */
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid book.InvalidBookError
	switch {
	case errors.As(err, &invalid):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: invalid.Reason})
	case errors.Is(err, book.ErrInvalidID):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: book.ErrInvalidID.Error()})
	case errors.Is(err, book.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: book.ErrNotFound.Error()})
	default:
		oplog := httplog.LogEntry(r.Context())
		oplog.Error().Err(err).Msg("storage failure")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not access the book store"})
	}
}

func decodeBookRequest(r *http.Request) (book.Patch, error) {
	var br bookRequest
	if err := json.NewDecoder(r.Body).Decode(&br); err != nil {
		return book.Patch{}, book.InvalidBookError{Reason: "invalid book object"}
	}
	return br.patch(), nil
}

// listBooks handles GET for one family. The pager derives the executed
// offset/limit from the family's query parameter contract.
func listBooks(bookService book.UseCase, pager func(*http.Request) book.Page) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := bookService.List(r.Context(), pager(r))
		if err != nil {
			respondError(w, r, err)
			return
		}
		result := make([]bookResponse, 0, len(all))
		for _, b := range all {
			result = append(result, newBookResponse(b))
		}
		respondJSON(w, http.StatusOK, result)
	})
}

// getBook handles GET by id for one family.
func getBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := bookService.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, newBookResponse(b))
	})
}

// postBooks handles POST for one family. Both families share the create
// rule: all required fields present, rating within [0,10].
func postBooks(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := decodeBookRequest(r)
		if err != nil {
			respondError(w, r, err)
			return
		}
		b, err := bookService.Create(r.Context(), p)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, newBookResponse(b))
	})
}

// deleteBook handles DELETE by id for one family.
func deleteBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := bookService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, messageResponse{Message: "book deleted successfully"})
	})
}

// patchBook handles PATCH by id. The document family merges whatever
// valid fields were supplied; the relational family additionally requires
// the payload to be complete and replaces every column.
func patchBook(bookService book.UseCase, requireComplete bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := decodeBookRequest(r)
		if err != nil {
			respondError(w, r, err)
			return
		}
		if requireComplete {
			if err := p.Complete(); err != nil {
				respondError(w, r, err)
				return
			}
		}
		if err := bookService.Update(r.Context(), chi.URLParam(r, "id"), p); err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, messageResponse{Message: "book updated successfully"})
	})
}
