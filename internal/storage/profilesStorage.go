package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	GetProfile     = `SELECT name, balance, login_at FROM PROFILES WHERE user_id=$1;`
	GetPlayedGames = `SELECT game_id FROM PLAYED_GAMES WHERE user_id=$1;`
	InsertProfile  = `INSERT INTO PROFILES (user_id, name, balance, login_at)
						VALUES ($1, $2, 0, NOW())
						ON CONFLICT (user_id) DO NOTHING;`
	UpdateLoginTime = `UPDATE PROFILES SET login_at = $1 WHERE user_id = $2;`

	// Запись об игре добавляется отдельной строкой: соседние записи набора
	// при этом не перезаписываются
	InsertPlayedGame = `INSERT INTO PLAYED_GAMES (user_id, game_id, fee)
						VALUES ($1, $2, $3)
						ON CONFLICT (user_id, game_id) DO NOTHING
						RETURNING game_id;`

	// Условное списание: баланс не может уйти в минус даже при гонке двух сессий
	DebitBalance = `UPDATE PROFILES
						SET balance = balance - $1
						WHERE user_id = $2 AND balance >= $1
						RETURNING balance;`
)

type ProfileDatabase struct {
	DB *Database
}

// Создание хранилища
func NewProfilesStorage(db *Database) ProfilesStorage {
	return &ProfileDatabase{DB: db}
}

// GetProfile - получение профиля пользователя вместе с набором сыгранных игр
func (s *ProfileDatabase) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var (
		name    string
		balance decimal.Decimal
		loginAt time.Time
	)
	err := s.DB.Pool.QueryRow(ctx, GetProfile, userID).Scan(&name, &balance, &loginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	played := make(map[string]bool)
	rows, err := s.DB.Pool.Query(ctx, GetPlayedGames, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get played games: %w", err)
	}
	for rows.Next() {
		var gameID string
		if err := rows.Scan(&gameID); err != nil {
			return nil, fmt.Errorf("failed scan played game: %w", err)
		}
		played[gameID] = true
	}

	return &models.UserProfile{
		UserID:      userID,
		DisplayName: name,
		Balance:     balance,
		PlayedGames: played,
		LoginAt:     loginAt,
	}, nil
}

// CreateProfile - создание профиля по умолчанию (нулевой баланс, пустой набор игр)
func (s *ProfileDatabase) CreateProfile(ctx context.Context, userID string, name string) error {
	if _, err := s.DB.Pool.Exec(ctx, InsertProfile, userID, name); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// TouchLogin - обновление времени входа пользователя
func (s *ProfileDatabase) TouchLogin(ctx context.Context, userID string, at time.Time) error {
	if _, err := s.DB.Pool.Exec(ctx, UpdateLoginTime, at, userID); err != nil {
		return fmt.Errorf("failed to touch login time: %w", err)
	}
	return nil
}

// SpendOnGame — списание платы за игру и отметка игры сыгранной в одной транзакции.
// Возвращает баланс после списания.
func (s *ProfileDatabase) SpendOnGame(ctx context.Context, userID string, gameID string, fee decimal.Decimal) (decimal.Decimal, error) {
	// Начинаем транзакцию
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Гарантированный откат при ошибке
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				logger.Error("SpendOnGame. Rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	// 1. Отмечаем игру сыгранной, дубликат означает повторную попытку оплаты
	var prevGame string
	err = tx.QueryRow(ctx, InsertPlayedGame, userID, gameID, fee).Scan(&prevGame)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrAlreadyExists
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return decimal.Zero, ErrAlreadyExists
		}
		return decimal.Zero, fmt.Errorf("insert played game: %w", err)
	}

	// 2. Условно уменьшаем баланс, пустой результат означает нехватку средств
	var balance decimal.Decimal
	err = tx.QueryRow(ctx, DebitBalance, fee, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrInsufficientBalance
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("update balance: %w", err)
	}

	// Успешное списание → коммитим транзакцию
	if err = tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("commit failed: %w", err)
	}
	return balance, nil
}
