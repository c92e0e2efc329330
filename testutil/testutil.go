package testutil

import (
	"context"
	"strings"
	"testing"

	"authbackend/auth"
	"authbackend/models"
)

// FakeUserRepo is an in-memory UserRepository for handler and middleware
// tests. When Err is set every method returns it. Lookups counts
// GetUserByID calls so tests can assert the store was not touched.
type FakeUserRepo struct {
	ByEmail map[string]*models.User
	ByID    map[string]*models.User
	Tokens  map[string]string
	Err     error
	Lookups int
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		ByEmail: map[string]*models.User{},
		ByID:    map[string]*models.User{},
		Tokens:  map[string]string{},
	}
}

func (f *FakeUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if f.Err != nil {
		return f.Err
	}
	if user.ID == "" {
		user.ID = "id-" + user.Email
	}
	f.ByEmail[user.Email] = user
	f.ByID[user.ID] = user
	return nil
}

func (f *FakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.ByEmail[email], nil
}

func (f *FakeUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.Lookups++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.ByID[id], nil
}

func (f *FakeUserRepo) SaveToken(ctx context.Context, id, token string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Tokens[id] = token
	return nil
}

func (f *FakeUserRepo) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	var users []*models.User
	for _, u := range f.ByID {
		users = append(users, u)
	}
	return users, nil
}

// SeedUser stores a user with a real bcrypt hash of password.
func SeedUser(t *testing.T, repo *FakeUserRepo, email, password string, role models.Role) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &models.User{
		Username: strings.SplitN(email, "@", 2)[0],
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return user
}
