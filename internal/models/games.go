package models

import "github.com/shopspring/decimal"

// GameData - модель игры из каталога
type GameData struct {
	ID       string
	Title    string
	Prize    string
	EntryFee decimal.Decimal
}

// GameResponse - модель игры для выдачи
type GameResponse struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Prize    string  `json:"prize"`
	EntryFee float64 `json:"entry_fee"`
	Played   bool    `json:"played"`
}
