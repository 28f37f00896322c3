package book

import (
	"context"
	"fmt"
)

/* Service represents the business logic layer. Pointer semantics: it is an
 * API, not data. The same Service type backs both endpoint families; only
 * the injected Repository differs.
 */

// UseCase defines the operations of one book resource family.
type UseCase interface {
	List(ctx context.Context, page Page) ([]Book, error)
	Get(ctx context.Context, id string) (Book, error)
	Create(ctx context.Context, p Patch) (Book, error)
	Update(ctx context.Context, id string, p Patch) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

func (s *Service) List(ctx context.Context, page Page) ([]Book, error) {
	all, err := s.Repo.SelectPage(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

// Create validates the payload with the create rule (complete and in
// range) and performs the single insert.
func (s *Service) Create(ctx context.Context, p Patch) (Book, error) {
	if err := p.Complete(); err != nil {
		return Book{}, err
	}
	if err := p.Validate(); err != nil {
		return Book{}, err
	}
	b := p.Book()
	id, err := s.Repo.Insert(ctx, b)
	if err != nil {
		return Book{}, fmt.Errorf("inserting book: %w", err)
	}
	b.ID = id
	return b, nil
}

// Update applies a patch to an existing book. Supplied fields are
// validated; whether the patch must be complete is the caller's policy
// (the relational family requires it, the document family does not).
func (s *Service) Update(ctx context.Context, id string, p Patch) error {
	if p.IsEmpty() {
		return InvalidBookError{Reason: "no fields to update"}
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, id, p); err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}
