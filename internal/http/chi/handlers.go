package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/bookstore/book"
)

// Handlers mounts the two book resource families. Both expose the same
// five operations; they differ only in the backing service, the paging
// contract and the update policy.
//
//	/books     -> document store, `p` page param (0-based, 3 per page),
//	              partial-merge PATCH
//	/pg/books  -> relational store, `page`/`limit` params (1-based),
//	              full-replace PATCH
func Handlers(ctx context.Context, documentBooks, relationalBooks book.UseCase, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("bookstore-api", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/books", func(r chi.Router) {
		r.Method(http.MethodGet, "/", listBooks(documentBooks, documentPage))
		r.Method(http.MethodGet, "/{id}", getBook(documentBooks))
		r.Method(http.MethodPost, "/", postBooks(documentBooks))
		r.Method(http.MethodDelete, "/{id}", deleteBook(documentBooks))
		r.Method(http.MethodPatch, "/{id}", patchBook(documentBooks, false))
	})

	r.Route("/pg/books", func(r chi.Router) {
		r.Method(http.MethodGet, "/", listBooks(relationalBooks, relationalPage))
		r.Method(http.MethodGet, "/{id}", getBook(relationalBooks))
		r.Method(http.MethodPost, "/", postBooks(relationalBooks))
		r.Method(http.MethodDelete, "/{id}", deleteBook(relationalBooks))
		r.Method(http.MethodPatch, "/{id}", patchBook(relationalBooks, true))
	})

	return r
}

func documentPage(r *http.Request) book.Page {
	return book.ZeroBasedPage(r.URL.Query().Get("p"))
}

func relationalPage(r *http.Request) book.Page {
	q := r.URL.Query()
	return book.OneBasedPage(q.Get("page"), q.Get("limit"))
}
