package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openshelf/library-system/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body.Error
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrBookNotFound, http.StatusNotFound},
		{domain.ErrLoanNotFound, http.StatusNotFound},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrBookUnavailable, http.StatusConflict},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserExists, http.StatusConflict},
	}

	for _, tc := range cases {
		if code, _ := render(t, tc.err); code != tc.code {
			t.Errorf("%v: got %d, want %d", tc.err, code, tc.code)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("approve loan: %w (from returned)", domain.ErrInvalidTransition)
	code, msg := render(t, wrapped)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("wrapped sentinel must still map: got %d", code)
	}
	if msg == "" {
		t.Fatalf("expected message in envelope")
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := render(t, echo.NewHTTPError(http.StatusBadRequest, "q is required"))
	if code != http.StatusBadRequest || msg != "q is required" {
		t.Fatalf("got %d %q", code, msg)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	code, msg := render(t, errors.New("mongo: socket closed"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details must not leak: %q", msg)
	}
}
