package repository

import (
	"context"

	"authbackend/models"
)

// UserRepository defines the interface for user operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	SaveToken(ctx context.Context, id, token string) error
	GetAllUsers(ctx context.Context) ([]*models.User, error)
}
