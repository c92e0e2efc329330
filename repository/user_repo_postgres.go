package repository

import (
	"context"
	"database/sql"
	"time"

	"authbackend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type PostgresUserRepo struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewPostgresUserRepo(db *sql.DB, log *zap.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db, Log: log}
}

func (r *PostgresUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if r.DB == nil {
		return ErrNotConnected
	}
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO app_user (id, username, email, password, role, token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Username, user.Email, user.Password, user.Role, user.Token, user.CreatedAt)

	return err
}

func (r *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.DB == nil {
		return nil, ErrNotConnected
	}
	return r.scanOne(r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, password, role, token, created_at
		FROM app_user
		WHERE email=$1
	`, email))
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if r.DB == nil {
		return nil, ErrNotConnected
	}
	return r.scanOne(r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, password, role, token, created_at
		FROM app_user
		WHERE id=$1
	`, id))
}

func (r *PostgresUserRepo) SaveToken(ctx context.Context, id, token string) error {
	if r.DB == nil {
		return ErrNotConnected
	}
	_, err := r.DB.ExecContext(ctx, `UPDATE app_user SET token=$1 WHERE id=$2`, token, id)
	return err
}

func (r *PostgresUserRepo) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	if r.DB == nil {
		return nil, ErrNotConnected
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, username, email, password, role, token, created_at
		FROM app_user
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role, &user.Token, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *PostgresUserRepo) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role, &user.Token, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
