package domain

import (
	"errors"
	"time"
)

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	StatusPending  LoanStatus = "pending"
	StatusApproved LoanStatus = "approved"
	StatusReturned LoanStatus = "returned"
)

// validTransitions defines the allowed state machine transitions.
// Returned is terminal; no transition skips a state or reverses.
var validTransitions = map[LoanStatus][]LoanStatus{
	StatusPending:  {StatusApproved},
	StatusApproved: {StatusReturned},
}

var ErrLoanNotFound = errors.New("loan not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrConflict = errors.New("concurrent transition conflict")
var ErrForbidden = errors.New("access forbidden")

// Loan policy. Due dates are always LoanPeriod after the loan date and a
// flat LateFeePerDay accrues per whole day past due at return time.
const (
	LoanPeriod    = 14 * 24 * time.Hour
	LateFeePerDay = 1.0
)

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Loan records one Book borrowed by one User, with a lifecycle status.
type Loan struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	BookID     string     `json:"book_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     LoanStatus `json:"status"`
	LateFee    float64    `json:"late_fee"`
}

// LateFeeFor computes the fee owed when a loan due at dueDate is returned
// at returnedAt. The elapsed overdue duration is truncated to whole days,
// so a return within 24 hours of the due date costs nothing.
func LateFeeFor(dueDate, returnedAt time.Time) float64 {
	if !returnedAt.After(dueDate) {
		return 0
	}
	daysLate := int(returnedAt.Sub(dueDate) / (24 * time.Hour))
	return float64(daysLate) * LateFeePerDay
}
