package handler

import (
	"time"

	"github.com/openshelf/library-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses (rendered by the central error handler).
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}
}

// --- Books ---

type createBookRequest struct {
	Title    string `json:"title"    validate:"required"`
	Author   string `json:"author"   validate:"required"`
	Category string `json:"category"`
}

type bookResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Category  string    `json:"category,omitempty"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}

type listBooksResponse struct {
	Data []bookResponse `json:"data"`
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Category:  b.Category,
		Available: b.Available,
		CreatedAt: b.CreatedAt,
	}
}

func toBookList(books []*domain.Book) listBooksResponse {
	out := listBooksResponse{Data: make([]bookResponse, 0, len(books))}
	for _, b := range books {
		out.Data = append(out.Data, toBookResponse(b))
	}
	return out
}

// --- Loans ---

type borrowRequest struct {
	BookID string `json:"book_id" validate:"required"`
}

type loanResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	BookID     string     `json:"book_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
	LateFee    float64    `json:"late_fee"`
}

type listLoansResponse struct {
	Data []loanResponse `json:"data"`
}

func toLoanResponse(l *domain.Loan) loanResponse {
	return loanResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		BookID:     l.BookID,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Status:     string(l.Status),
		LateFee:    l.LateFee,
	}
}

func toLoanList(loans []*domain.Loan) listLoansResponse {
	out := listLoansResponse{Data: make([]loanResponse, 0, len(loans))}
	for _, l := range loans {
		out.Data = append(out.Data, toLoanResponse(l))
	}
	return out
}
