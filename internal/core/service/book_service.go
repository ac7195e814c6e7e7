package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openshelf/library-system/internal/api/metrics"
	"github.com/openshelf/library-system/internal/core/domain"
	"github.com/openshelf/library-system/internal/core/ports"
)

// BookService implements catalog use cases.
type BookService struct {
	repo ports.BookRepository
	log  zerolog.Logger
}

func NewBookService(repo ports.BookRepository, log zerolog.Logger) *BookService {
	return &BookService{repo: repo, log: log}
}

// CreateBook adds a catalog entry. Admin only; new books start available.
func (s *BookService) CreateBook(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	if input.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	book := &domain.Book{
		Title:     input.Title,
		Author:    input.Author,
		Category:  input.Category,
		Available: true,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		s.log.Error().Err(err).Str("title", input.Title).Msg("failed to create book")
		return nil, err
	}

	s.log.Info().Str("book_id", created.ID).Str("title", created.Title).Msg("book created")
	return created, nil
}

func (s *BookService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.repo.List(ctx)
}

// Search matches the query as a case-insensitive substring against
// title, author, and category, returning the union of matches.
func (s *BookService) Search(ctx context.Context, query string) ([]*domain.Book, error) {
	books, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	metrics.BookSearchesTotal.Inc()
	return books, nil
}
