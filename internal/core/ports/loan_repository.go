package ports

import (
	"context"
	"time"

	"github.com/openshelf/library-system/internal/core/domain"
)

// ListLoansFilter carries query parameters for listing loans.
// UserID is enforced by the service layer for non-admin principals.
type ListLoansFilter struct {
	UserID string // empty = all users (admin view)
	Status string // optional: filter by loan status
}

// LoanRepository defines persistence operations for loans. The two
// transition methods apply the status change and the book availability
// flip as one atomic unit, guarded by a status precondition so that of
// two concurrent transitions exactly one succeeds.
type LoanRepository interface {
	Create(ctx context.Context, l *domain.Loan) (*domain.Loan, error)
	FindByID(ctx context.Context, id string) (*domain.Loan, error)
	// List returns loans matching filter, newest loan_date first.
	List(ctx context.Context, filter ListLoansFilter) ([]*domain.Loan, error)

	// Approve transitions the loan pending -> approved and marks the book
	// unavailable. Returns domain.ErrConflict when the loan is no longer
	// pending at write time.
	Approve(ctx context.Context, loanID, bookID string) error

	// Return transitions the loan approved -> returned, stamps the return
	// date and late fee, and marks the book available again. Returns
	// domain.ErrConflict when the loan is no longer approved at write time.
	Return(ctx context.Context, loanID, bookID string, returnedAt time.Time, lateFee float64) error
}
