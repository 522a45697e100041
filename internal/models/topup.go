package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы заявок на пополнение
const (
	TopUpStatusPending  = "PENDING"
	TopUpStatusApproved = "APPROVED"
	TopUpStatusDeclined = "DECLINED"
	TopUpStatusApplied  = "APPLIED"
)

// TopUpRequest - модель заявки на ручное пополнение баланса, приходит извне
type TopUpRequest struct {
	Amount        float64 `json:"amount"`
	SenderName    string  `json:"sender_account_name"`
	SenderAccount string  `json:"sender_account_number"`
	TransactionID string  `json:"transaction_id"`
}

// TopUpData - модель хранения заявки на пополнение
type TopUpData struct {
	ID            string
	UserID        string
	Amount        decimal.Decimal
	SenderName    string
	SenderAccount string
	TransactionID string
	Status        string
	RequestedAt   time.Time
}

// TopUpResponse - структура ответа на принятую заявку
type TopUpResponse struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}
