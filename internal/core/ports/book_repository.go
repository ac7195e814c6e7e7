package ports

import (
	"context"

	"github.com/openshelf/library-system/internal/core/domain"
)

// BookRepository defines persistence operations for the catalog.
// Availability is not writable here: only the loan repository mutates it,
// inside the same atomic unit as the loan status change.
type BookRepository interface {
	Create(ctx context.Context, b *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]*domain.Book, error)
	// Search returns books whose title, author, or category contains the
	// query as a case-insensitive substring (union of matches).
	Search(ctx context.Context, query string) ([]*domain.Book, error)
}
