package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/openshelf/library-system/internal/api/metrics"
	"github.com/openshelf/library-system/internal/core/domain"
	"github.com/openshelf/library-system/internal/core/ports"
)

// LoanService is the loan lifecycle engine. It validates transitions and
// access, and delegates the atomic status+availability writes to the
// repository. The engine itself trusts its inputs only after the role
// checks at the top of each operation.
type LoanService struct {
	loans ports.LoanRepository
	books ports.BookRepository
	log   zerolog.Logger
}

func NewLoanService(loans ports.LoanRepository, books ports.BookRepository, log zerolog.Logger) *LoanService {
	return &LoanService{loans: loans, books: books, log: log}
}

// RequestBorrow creates a pending loan for an available book. The book
// stays listed as available until an admin approves the loan, so two
// users may hold pending requests on the same book; first approved wins.
func (s *LoanService) RequestBorrow(ctx context.Context, input ports.BorrowInput) (*domain.Loan, error) {
	if input.Role != domain.RoleAdmin && input.UserID != input.PrincipalID {
		return nil, domain.ErrForbidden
	}

	book, err := s.books.FindByID(ctx, input.BookID)
	if err != nil {
		return nil, err
	}
	if !book.Available {
		return nil, domain.ErrBookUnavailable
	}

	now := time.Now().UTC()
	loan := &domain.Loan{
		UserID:   input.UserID,
		BookID:   input.BookID,
		LoanDate: now,
		DueDate:  now.Add(domain.LoanPeriod),
		Status:   domain.StatusPending,
	}

	created, err := s.loans.Create(ctx, loan)
	if err != nil {
		s.log.Error().Err(err).Str("book_id", input.BookID).Msg("failed to create loan")
		return nil, err
	}

	metrics.LoansRequestedTotal.Inc()
	s.log.Info().
		Str("loan_id", created.ID).
		Str("user_id", created.UserID).
		Str("book_id", created.BookID).
		Msg("borrow request created")

	return created, nil
}

// Approve transitions a pending loan to approved and marks the book
// unavailable, both-or-neither. Re-approving a non-pending loan is an
// error, never a silent no-op.
func (s *LoanService) Approve(ctx context.Context, input ports.TransitionInput) (*domain.Loan, error) {
	if input.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	loan, err := s.loans.FindByID(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}
	if !loan.Status.CanTransitionTo(domain.StatusApproved) {
		return nil, fmt.Errorf("approve loan: %w (from %s)", domain.ErrInvalidTransition, loan.Status)
	}

	if err := s.loans.Approve(ctx, loan.ID, loan.BookID); err != nil {
		return nil, fmt.Errorf("approve loan: %w", err)
	}

	loan.Status = domain.StatusApproved
	metrics.LoansApprovedTotal.Inc()
	s.log.Info().Str("loan_id", loan.ID).Str("book_id", loan.BookID).Msg("loan approved")
	return loan, nil
}

// Return transitions an approved loan to returned, stamps the return
// date, computes the late fee, and makes the book available again.
func (s *LoanService) Return(ctx context.Context, input ports.TransitionInput) (*domain.Loan, error) {
	if input.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	loan, err := s.loans.FindByID(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}
	if !loan.Status.CanTransitionTo(domain.StatusReturned) {
		return nil, fmt.Errorf("return loan: %w (from %s)", domain.ErrInvalidTransition, loan.Status)
	}

	now := time.Now().UTC()
	fee := domain.LateFeeFor(loan.DueDate, now)

	if err := s.loans.Return(ctx, loan.ID, loan.BookID, now, fee); err != nil {
		return nil, fmt.Errorf("return loan: %w", err)
	}

	loan.Status = domain.StatusReturned
	loan.ReturnDate = &now
	loan.LateFee = fee

	metrics.LoansReturnedTotal.Inc()
	metrics.LateFeeDays.Observe(fee / domain.LateFeePerDay)
	s.log.Info().
		Str("loan_id", loan.ID).
		Str("book_id", loan.BookID).
		Float64("late_fee", fee).
		Msg("loan returned")

	return loan, nil
}

// ListLoans returns the principal's own loans, or all loans for admins
// (newest first), optionally filtered by status.
func (s *LoanService) ListLoans(ctx context.Context, input ports.ListLoansInput) ([]*domain.Loan, error) {
	filter := ports.ListLoansFilter{Status: input.Status}
	if input.Role != domain.RoleAdmin {
		filter.UserID = input.UserID
	}
	return s.loans.List(ctx, filter)
}
