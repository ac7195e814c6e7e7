package ports

import (
	"context"

	"github.com/openshelf/library-system/internal/core/domain"
)

// AuthService implements registration, login, and token revocation.
// Registration always yields the user role; admin accounts are
// bootstrapped out of band.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
}
