package storage

import (
	"context"
	"errors"
	"time"

	"github.com/avdeev99/fundplay/internal/models"
	"github.com/shopspring/decimal"
)

type UsersStorage interface {
	AddUser(ctx context.Context, user models.UserData) error
	GetUser(ctx context.Context, userID string) (*models.UserData, error)
	GetUserByEmail(ctx context.Context, email string) (*models.UserData, error)
}

type ProfilesStorage interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	CreateProfile(ctx context.Context, userID string, name string) error
	TouchLogin(ctx context.Context, userID string, at time.Time) error
	SpendOnGame(ctx context.Context, userID string, gameID string, fee decimal.Decimal) (decimal.Decimal, error)
}

type GamesStorage interface {
	GetGames(ctx context.Context) ([]models.GameData, error)
	GetGame(ctx context.Context, gameID string) (*models.GameData, error)
}

type TopUpsStorage interface {
	AddRequest(ctx context.Context, request models.TopUpData) error
	ClaimPendingRequests(ctx context.Context, count int) ([]string, error)
	ApplyRequest(ctx context.Context, requestID string, amount decimal.Decimal) error
	DeclineRequest(ctx context.Context, requestID string) error
}

type Storage struct {
	Users    UsersStorage
	Profiles ProfilesStorage
	Games    GamesStorage
	TopUps   TopUpsStorage
}

// Создание хранилища
func NewStorage(db *Database) Storage {
	return Storage{
		Users:    NewUsersStorage(db),
		Profiles: NewProfilesStorage(db),
		Games:    NewGamesStorage(db),
		TopUps:   NewTopUpsStorage(db),
	}
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrGameNotFound    = errors.New("game not found")
	ErrRequestNotFound = errors.New("payment request not found")

	ErrAlreadyExists = errors.New("already exists")

	ErrInsufficientBalance = errors.New("insufficient balance")
)
