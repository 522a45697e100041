package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeev99/fundplay/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	GetGames = `SELECT id, title, prize, entry_fee FROM GAMES ORDER BY entry_fee;`
	GetGame  = `SELECT id, title, prize, entry_fee FROM GAMES WHERE id=$1;`
)

type GameDatabase struct {
	DB *Database
}

// Создание хранилища
func NewGamesStorage(db *Database) GamesStorage {
	return &GameDatabase{DB: db}
}

func (s *GameDatabase) GetGames(ctx context.Context) ([]models.GameData, error) {
	var games []models.GameData
	rows, err := s.DB.Pool.Query(ctx, GetGames)
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}
	for rows.Next() {
		var (
			id       string
			title    string
			prize    string
			entryFee decimal.Decimal
		)
		if err := rows.Scan(&id, &title, &prize, &entryFee); err != nil {
			return games, fmt.Errorf("failed scan game data: %w", err)
		}
		games = append(games, models.GameData{
			ID:       id,
			Title:    title,
			Prize:    prize,
			EntryFee: entryFee,
		})
	}
	return games, err
}

func (s *GameDatabase) GetGame(ctx context.Context, gameID string) (*models.GameData, error) {
	var (
		id       string
		title    string
		prize    string
		entryFee decimal.Decimal
	)
	err := s.DB.Pool.QueryRow(ctx, GetGame, gameID).Scan(&id, &title, &prize, &entryFee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return &models.GameData{
		ID:       id,
		Title:    title,
		Prize:    prize,
		EntryFee: entryFee,
	}, nil
}
