package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// Журнал заявок только пополняется, существующие записи форма не изменяет
	InsertTopUpRequest = `INSERT INTO PAYMENT_REQUESTS (id, user_id, amount, sender_name, sender_account, transaction_id, status, requested_at)
							VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	ClaimPendingRequests = `UPDATE PAYMENT_REQUESTS
							SET attempts = attempts + 1,
							    updated_at = NOW()
							WHERE id IN (
							    SELECT id FROM PAYMENT_REQUESTS
							    WHERE status = 'PENDING'
							    ORDER BY requested_at
							    LIMIT $1
							    FOR UPDATE SKIP LOCKED
							)
							RETURNING id;`

	ResolveRequest = `UPDATE PAYMENT_REQUESTS
							SET status = $1,
							    processed_at = NOW()
							WHERE id = $2 AND status = 'PENDING'
							RETURNING user_id;`

	CreditBalance = `UPDATE PROFILES
							SET balance = balance + $1
							WHERE user_id = $2;`
)

type TopUpDatabase struct {
	DB *Database
}

// Создание хранилища
func NewTopUpsStorage(db *Database) TopUpsStorage {
	return &TopUpDatabase{DB: db}
}

// AddRequest - добавление заявки на пополнение в журнал
func (s *TopUpDatabase) AddRequest(ctx context.Context, request models.TopUpData) error {
	_, err := s.DB.Pool.Exec(ctx, InsertTopUpRequest,
		request.ID,
		request.UserID,
		request.Amount,
		request.SenderName,
		request.SenderAccount,
		request.TransactionID,
		request.Status,
		request.RequestedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add payment request: %w", err)
	}
	return nil
}

// ClaimPendingRequests - выборка пачки необработанных заявок для опроса шлюза проверки
func (s *TopUpDatabase) ClaimPendingRequests(ctx context.Context, count int) ([]string, error) {
	var ids []string
	rows, err := s.DB.Pool.Query(ctx, ClaimPendingRequests, count)
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending requests: %w", err)
	}
	for rows.Next() {
		var requestID string
		if err := rows.Scan(&requestID); err != nil {
			return ids, fmt.Errorf("failed scan request id: %w", err)
		}
		ids = append(ids, requestID)
	}
	return ids, err
}

// ApplyRequest — зачисление одобренной суммы и перевод заявки в APPLIED в одной транзакции
func (s *TopUpDatabase) ApplyRequest(ctx context.Context, requestID string, amount decimal.Decimal) error {
	// Начинаем транзакцию
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Гарантированный откат при ошибке
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				logger.Error("ApplyRequest. Rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	// 1. Переводим заявку в конечный статус, заявка могла быть уже обработана
	var userID string
	err = tx.QueryRow(ctx, ResolveRequest, models.TopUpStatusApplied, requestID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrRequestNotFound
			return err
		}
		return fmt.Errorf("resolve request: %w", err)
	}

	// 2. Зачисляем одобренную сумму на баланс
	_, err = tx.Exec(ctx, CreditBalance, amount, userID)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}

	// Если всё успешно - коммитим
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ApplyRequest. Commit failed: %w", err)
	}
	return nil
}

// DeclineRequest - перевод отклонённой заявки в DECLINED, баланс не меняется
func (s *TopUpDatabase) DeclineRequest(ctx context.Context, requestID string) error {
	var userID string
	err := s.DB.Pool.QueryRow(ctx, ResolveRequest, models.TopUpStatusDeclined, requestID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to decline request: %w", err)
	}
	return nil
}
