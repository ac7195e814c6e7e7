package ports

import (
	"context"

	"github.com/openshelf/library-system/internal/core/domain"
)

// CreateBookInput carries the data for adding a catalog entry. Role is
// the acting principal's role; only admins may create books.
type CreateBookInput struct {
	Title    string
	Author   string
	Category string
	Role     domain.Role
}

// BookService defines use-case operations on the catalog.
type BookService interface {
	CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	Search(ctx context.Context, query string) ([]*domain.Book, error)
}
