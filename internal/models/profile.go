package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserProfile - профиль пользователя: имя, баланс и набор сыгранных игр.
// Набор хранится как множество идентификаторов, добавленная игра из него не удаляется.
type UserProfile struct {
	UserID      string
	DisplayName string
	Balance     decimal.Decimal
	PlayedGames map[string]bool
	LoginAt     time.Time
}

// HasPlayed - проверка наличия игры в наборе сыгранных
func (p *UserProfile) HasPlayed(gameID string) bool {
	return p.PlayedGames[gameID]
}

// MarkPlayed - добавление игры в набор сыгранных
func (p *UserProfile) MarkPlayed(gameID string) {
	if p.PlayedGames == nil {
		p.PlayedGames = make(map[string]bool)
	}
	p.PlayedGames[gameID] = true
}

// Clone - глубокая копия профиля с собственным набором сыгранных игр
func (p *UserProfile) Clone() *UserProfile {
	played := make(map[string]bool, len(p.PlayedGames))
	for gameID := range p.PlayedGames {
		played[gameID] = true
	}
	return &UserProfile{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Balance:     p.Balance,
		PlayedGames: played,
		LoginAt:     p.LoginAt,
	}
}

// ProfileResponse — структура ответа с данными профиля
type ProfileResponse struct {
	Name        string   `json:"name"`
	Balance     float64  `json:"balance"`
	PlayedGames []string `json:"played_games"`
}

// BalanceResponse — структура ответа с текущим балансом
type BalanceResponse struct {
	Current float64 `json:"current"`
}
