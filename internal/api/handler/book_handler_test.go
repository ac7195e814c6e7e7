package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/openshelf/library-system/internal/core/domain"
	"github.com/openshelf/library-system/internal/core/ports"
)

type stubBookService struct {
	createFn func(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error)
	getFn    func(ctx context.Context, id string) (*domain.Book, error)
	listFn   func(ctx context.Context) ([]*domain.Book, error)
	searchFn func(ctx context.Context, query string) ([]*domain.Book, error)
}

func (s *stubBookService) CreateBook(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.getFn(ctx, id)
}

func (s *stubBookService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.listFn(ctx)
}

func (s *stubBookService) Search(ctx context.Context, query string) ([]*domain.Book, error) {
	return s.searchFn(ctx, query)
}

func TestBookHandler_Create_Success(t *testing.T) {
	stub := &stubBookService{
		createFn: func(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
			if input.Title != "The Hobbit" || input.Role != domain.RoleAdmin {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Book{ID: "b1", Title: input.Title, Author: input.Author, Available: true}, nil
		},
	}
	handler := NewBookHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/v1/books",
		`{"title":"The Hobbit","author":"J.R.R. Tolkien","category":"Fantasy"}`)
	asPrincipal(c, "admin1", domain.RoleAdmin)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["available"] != true {
		t.Fatalf("new book must be available: %+v", resp)
	}
}

func TestBookHandler_Create_MissingTitle(t *testing.T) {
	stub := &stubBookService{
		createFn: func(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewBookHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/v1/books", `{"author":"J.R.R. Tolkien"}`)
	asPrincipal(c, "admin1", domain.RoleAdmin)

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestBookHandler_Get_NotFound(t *testing.T) {
	stub := &stubBookService{
		getFn: func(ctx context.Context, id string) (*domain.Book, error) {
			return nil, domain.ErrBookNotFound
		},
	}
	handler := NewBookHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/v1/books/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Get(c); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound passed through, got %v", err)
	}
}

func TestBookHandler_Search_RequiresQuery(t *testing.T) {
	stub := &stubBookService{
		searchFn: func(ctx context.Context, query string) ([]*domain.Book, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewBookHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/v1/books/search", "")

	err := handler.Search(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestBookHandler_Search_ReturnsMatches(t *testing.T) {
	stub := &stubBookService{
		searchFn: func(ctx context.Context, query string) ([]*domain.Book, error) {
			if query != "Tolkien" {
				t.Fatalf("unexpected query: %q", query)
			}
			return []*domain.Book{
				{ID: "b1", Title: "The Hobbit", Author: "J.R.R. Tolkien", Available: true},
			}, nil
		},
	}
	handler := NewBookHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/books/search?q=Tolkien", "")

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string][]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp["data"]) != 1 || resp["data"][0]["author"] != "J.R.R. Tolkien" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestBookHandler_List_Empty(t *testing.T) {
	stub := &stubBookService{
		listFn: func(ctx context.Context) ([]*domain.Book, error) {
			return nil, nil
		},
	}
	handler := NewBookHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/books", "")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string][]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["data"] == nil {
		t.Fatalf("data must be an empty array, not null")
	}
}
