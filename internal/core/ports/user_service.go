package ports

import (
	"context"

	"github.com/nocturnal/nocturnal-api/internal/core/domain"
)

// CreateUserInput is the DTO passed from the transport layer to UserService.
type CreateUserInput struct {
	Username    string
	Displayname string
}

// UserService defines use-case operations for users. IDs cross this boundary
// as hex strings; malformed IDs yield domain.ErrInvalidID.
type UserService interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (string, error)
	DeleteUser(ctx context.Context, id string) (int64, error)
}
