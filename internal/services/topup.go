package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avdeev99/fundplay/internal/client"
	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/models"
	"github.com/avdeev99/fundplay/internal/storage"
	"github.com/avdeev99/fundplay/internal/validators"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTopUpAmount = errors.New("invalid top-up amount")
	ErrMissingRequisites  = errors.New("missing payment requisites")
)

type TopUpService interface {
	SubmitRequest(ctx context.Context, userID string, request models.TopUpRequest) (*models.TopUpData, error)
	GetPendingRequests(ctx context.Context, count int) ([]string, error)
	ProcessRequest(ctx context.Context, requestID string) error
}

// TopUp - приём заявок на ручное пополнение и применение вердиктов внешней
// проверки. Сама заявка после записи в журнал формой не изменяется.
type TopUp struct {
	Storage storage.TopUpsStorage
	Client  *client.Client
	Limiter *client.RateLimiter
}

// Создание сервиса
func NewTopUp(reviewURL string, topups storage.TopUpsStorage) TopUpService {
	return &TopUp{
		Storage: topups,
		Client:  client.NewClient(reviewURL, &http.Client{}),
		Limiter: client.NewRateLimiter(),
	}
}

// SubmitRequest - валидация и единственная запись заявки в журнал со статусом PENDING
func (s *TopUp) SubmitRequest(ctx context.Context, userID string, request models.TopUpRequest) (*models.TopUpData, error) {
	if !validators.CheckAmount(request.Amount) {
		return nil, ErrInvalidTopUpAmount
	}
	if !validators.CheckRequiredText(request.SenderName) ||
		!validators.CheckRequiredText(request.SenderAccount) ||
		!validators.CheckRequiredText(request.TransactionID) {
		return nil, ErrMissingRequisites
	}

	topup := models.TopUpData{
		ID:            uuid.New().String(),
		UserID:        userID,
		Amount:        decimal.NewFromFloat(request.Amount),
		SenderName:    request.SenderName,
		SenderAccount: request.SenderAccount,
		TransactionID: request.TransactionID,
		Status:        models.TopUpStatusPending,
		RequestedAt:   time.Now(),
	}

	if err := s.Storage.AddRequest(ctx, topup); err != nil {
		logger.Error("Failed to add top-up request", err)
		return nil, err
	}

	logger.Info("Top-up request submitted", topup.ID, "amount", request.Amount)
	return &topup, nil
}

// GetPendingRequests - выборка пачки заявок для опроса шлюза проверки
func (s *TopUp) GetPendingRequests(ctx context.Context, count int) ([]string, error) {
	return s.Storage.ClaimPendingRequests(ctx, count)
}

// ProcessRequest - опрос шлюза проверки и применение вердикта по заявке.
// Одобренная сумма зачисляется на баланс, отклонённая заявка закрывается,
// незавершённая проверка оставляет заявку до следующего цикла.
func (s *TopUp) ProcessRequest(ctx context.Context, requestID string) error {
	if err := s.Limiter.Wait(ctx); err != nil {
		return err
	}

	review, err := s.getReview(ctx, requestID)
	if err != nil {
		// проверка большого количества запросов
		var rateLimitErr *client.RateLimitError
		if errors.As(err, &rateLimitErr) {
			logger.Warn("Too many requests to review gateway:", requestID)
			s.Limiter.BlockFor(rateLimitErr.RetryAfter)
			return nil
		}
		// шлюз ещё не знает о заявке, вернёмся к ней позже
		if errors.Is(err, client.ErrRequestNotRegistered) {
			return nil
		}
		return err
	}

	switch review.Status {
	case models.TopUpStatusApproved:
		if err := s.Storage.ApplyRequest(ctx, requestID, decimal.NewFromFloat(review.Amount)); err != nil {
			if errors.Is(err, storage.ErrRequestNotFound) {
				// заявка уже обработана другим экземпляром
				return nil
			}
			return err
		}
		logger.Info("Top-up applied", requestID, "amount", review.Amount)
		return nil
	case models.TopUpStatusDeclined:
		if err := s.Storage.DeclineRequest(ctx, requestID); err != nil {
			if errors.Is(err, storage.ErrRequestNotFound) {
				return nil
			}
			return err
		}
		logger.Info("Top-up declined", requestID)
		return nil
	case models.TopUpStatusPending:
		return nil
	default:
		logger.Error("Undefined review status:", review.Status)
		return fmt.Errorf("undefined review status %s", review.Status)
	}
}

// getReview - запрос вердикта с повтором на временных сбоях шлюза
func (s *TopUp) getReview(ctx context.Context, requestID string) (*client.ReviewResponse, error) {
	var review *client.ReviewResponse

	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := s.Client.GetReview(ctx, requestID)
		if err != nil {
			if errors.Is(err, client.ErrServiceUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}
		review = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}
