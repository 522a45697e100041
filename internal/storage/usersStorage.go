package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeev99/fundplay/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	InsertUser = `INSERT INTO USERS (id, email, password, name)
						VALUES ($1, $2, $3, $4)
						ON CONFLICT (email) DO NOTHING
						RETURNING email;`
	GetUser        = `SELECT id, email, password, name, disabled FROM USERS WHERE id=$1;`
	GetUserByEmail = `SELECT id, email, password, name, disabled FROM USERS WHERE email=$1;`
)

type UserDatabase struct {
	DB *Database
}

// Создание хранилища
func NewUsersStorage(db *Database) UsersStorage {
	return &UserDatabase{DB: db}
}

func (s *UserDatabase) GetUser(ctx context.Context, userID string) (*models.UserData, error) {
	return s.getUser(ctx, GetUser, userID)
}

func (s *UserDatabase) GetUserByEmail(ctx context.Context, email string) (*models.UserData, error) {
	return s.getUser(ctx, GetUserByEmail, email)
}

func (s *UserDatabase) getUser(ctx context.Context, query string, key string) (*models.UserData, error) {
	var (
		userID   string
		email    string
		password string
		name     string
		disabled bool
	)
	err := s.DB.Pool.QueryRow(ctx, query, key).Scan(&userID, &email, &password, &name, &disabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &models.UserData{
		UserID:       userID,
		Email:        email,
		PasswordHash: password,
		DisplayName:  name,
		Disabled:     disabled,
	}, nil
}

func (s *UserDatabase) AddUser(ctx context.Context, user models.UserData) error {
	var prevEmail string

	err := s.DB.Pool.QueryRow(ctx, InsertUser, user.UserID, user.Email, user.PasswordHash, user.DisplayName).Scan(&prevEmail)

	// Успешное добавление
	if err == nil {
		return nil
	}

	// ON CONFLICT DO NOTHING ничего не возвращает при дубликате
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAlreadyExists
	}

	// Проверяем именно нарушение уникальности (код 23505)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}

	// Все остальные ошибки
	return fmt.Errorf("failed to add user: %w", err)
}
