package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nocturnal/nocturnal-api/internal/core/domain"
	"github.com/nocturnal/nocturnal-api/internal/core/ports"
	"github.com/nocturnal/nocturnal-api/internal/metrics"
)

const usersCollection = "users"

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// GetByUsername returns domain.ErrUserNotFound when no user has that exact username.
// Store errors are returned unchanged.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	start := time.Now()
	user, err := s.repo.FindByUsername(ctx, username)
	metrics.ObserveStore(usersCollection, "find_by_username", start, err)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	user, err := s.repo.FindByID(ctx, oid)
	metrics.ObserveStore(usersCollection, "find_by_id", start, err)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// CreateUser inserts a new user and returns its hex ID. The store assigns the
// ID; created_at is left unset.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (string, error) {
	start := time.Now()
	id, err := s.repo.Create(ctx, domain.User{
		Username:    input.Username,
		Displayname: input.Displayname,
	})
	metrics.ObserveStore(usersCollection, "insert", start, err)
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to create user")
		return "", err
	}

	metrics.UsersCreatedTotal.Inc()
	s.logger.Info().Str("user_id", id.Hex()).Str("username", input.Username).Msg("user created")
	return id.Hex(), nil
}

// DeleteUser removes the user with the given ID. Deleting an unknown ID is not
// an error; the returned count is zero. Messages by the user are kept.
func (s *UserService) DeleteUser(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	n, err := s.repo.Delete(ctx, oid)
	metrics.ObserveStore(usersCollection, "delete", start, err)
	if err != nil {
		return 0, err
	}

	metrics.UsersDeletedTotal.Add(float64(n))
	s.logger.Info().Str("user_id", id).Int64("deleted_count", n).Msg("user delete")
	return n, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return oid, nil
}
