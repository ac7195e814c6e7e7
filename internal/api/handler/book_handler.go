package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openshelf/library-system/internal/core/ports"
)

// BookHandler handles HTTP requests for catalog operations.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// Create adds a book to the catalog (admin only).
//
// @Summary      Add a book to the catalog
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookRequest  true  "Book details"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, role, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	book, err := h.service.CreateBook(c.Request().Context(), ports.CreateBookInput{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
		Role:     role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toBookResponse(book))
}

// Get handles GET /v1/books/:id.
//
// @Summary      Get a book by id
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Book id"
// @Success      200  {object}  bookResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.GetBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// List handles GET /v1/books.
//
// @Summary      List the catalog
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listBooksResponse
// @Router       /v1/books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.service.ListBooks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookList(books))
}

// Search handles GET /v1/books/search?q=.
//
// @Summary      Search the catalog
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        q  query     string  true  "Substring matched against title, author, and category (case-insensitive)"
// @Success      200  {object}  listBooksResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/books/search [get]
func (h *BookHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	books, err := h.service.Search(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookList(books))
}
