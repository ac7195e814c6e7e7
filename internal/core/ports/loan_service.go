package ports

import (
	"context"

	"github.com/openshelf/library-system/internal/core/domain"
)

// BorrowInput carries the parameters for a borrow request. PrincipalID
// and Role identify the acting principal; a user may only borrow for
// themselves.
type BorrowInput struct {
	BookID      string
	UserID      string // the borrower
	PrincipalID string
	Role        domain.Role
}

// TransitionInput identifies a loan and the acting principal for the
// admin-only approve and return operations.
type TransitionInput struct {
	LoanID string
	Role   domain.Role
}

// ListLoansInput carries the parameters for the loan listing. Non-admin
// principals are always scoped to their own loans.
type ListLoansInput struct {
	UserID string
	Role   domain.Role
	Status string // optional status filter
}

// LoanService is the loan lifecycle engine's use-case surface.
type LoanService interface {
	RequestBorrow(ctx context.Context, input BorrowInput) (*domain.Loan, error)
	Approve(ctx context.Context, input TransitionInput) (*domain.Loan, error)
	Return(ctx context.Context, input TransitionInput) (*domain.Loan, error)
	ListLoans(ctx context.Context, input ListLoansInput) ([]*domain.Loan, error)
}
