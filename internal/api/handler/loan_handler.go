package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openshelf/library-system/internal/core/ports"
)

// LoanHandler handles HTTP requests for the loan lifecycle.
type LoanHandler struct {
	service ports.LoanService
}

func NewLoanHandler(service ports.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

// Create handles POST /v1/loans — a borrow request for the calling user.
//
// @Summary      Request to borrow a book
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      borrowRequest  true  "Borrow request"
// @Success      201   {object}  loanResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/loans [post]
func (h *LoanHandler) Create(c echo.Context) error {
	var req borrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, role, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	loan, err := h.service.RequestBorrow(c.Request().Context(), ports.BorrowInput{
		BookID:      req.BookID,
		UserID:      userID,
		PrincipalID: userID,
		Role:        role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toLoanResponse(loan))
}

// List handles GET /v1/loans. Users see their own loans; admins see all
// loans (the borrow-requests view), newest first. An optional ?status=
// filter narrows the listing.
//
// @Summary      List loans
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (pending/approved/returned)"
// @Success      200     {object}  listLoansResponse
// @Router       /v1/loans [get]
func (h *LoanHandler) List(c echo.Context) error {
	userID, role, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	loans, err := h.service.ListLoans(c.Request().Context(), ports.ListLoansInput{
		UserID: userID,
		Role:   role,
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLoanList(loans))
}

// Approve handles POST /v1/loans/:id/approve (admin only).
//
// @Summary      Approve a pending borrow request
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Loan id"
// @Success      200  {object}  loanResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/loans/{id}/approve [post]
func (h *LoanHandler) Approve(c echo.Context) error {
	_, role, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	loan, err := h.service.Approve(c.Request().Context(), ports.TransitionInput{
		LoanID: c.Param("id"),
		Role:   role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLoanResponse(loan))
}

// Return handles POST /v1/loans/:id/return (admin only).
//
// @Summary      Mark an approved loan as returned
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Loan id"
// @Success      200  {object}  loanResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/loans/{id}/return [post]
func (h *LoanHandler) Return(c echo.Context) error {
	_, role, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	loan, err := h.service.Return(c.Request().Context(), ports.TransitionInput{
		LoanID: c.Param("id"),
		Role:   role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLoanResponse(loan))
}
