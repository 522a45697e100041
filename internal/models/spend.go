package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Состояния намерения списания
const (
	IntentStatePriced    = "PRICED"
	IntentStateCommitted = "COMMITTED"
	IntentStateRejected  = "REJECTED"
	IntentStateAborted   = "ABORTED"
)

// SpendIntent - намерение списания средств за участие в игре.
// Живёт в памяти от запроса цены до подтверждения или отмены, не сохраняется.
type SpendIntent struct {
	ID           string
	UserID       string
	GameID       string
	GameTitle    string
	Fee          decimal.Decimal
	BalanceAtPri decimal.Decimal
	BalanceAfter decimal.Decimal
	State        string
	CreatedAt    time.Time
}

// SpendRequest - модель запроса на участие в игре, приходит извне
type SpendRequest struct {
	GameID string `json:"game_id"`
}

// SpendIntentResponse — структура ответа с расценённым намерением
type SpendIntentResponse struct {
	IntentID     string  `json:"intent_id"`
	GameTitle    string  `json:"game_title"`
	EntryFee     float64 `json:"entry_fee"`
	Balance      float64 `json:"balance"`
	BalanceAfter float64 `json:"balance_after"`
}

// SpendResultResponse — структура ответа по результату подтверждения
type SpendResultResponse struct {
	State     string  `json:"state"`
	GameTitle string  `json:"game_title"`
	Balance   float64 `json:"balance"`
}
