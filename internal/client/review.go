package client

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// ReviewResponse - вердикт внешнего сервиса проверки по заявке на пополнение
type ReviewResponse struct {
	RequestID string  `json:"request_id"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount,omitempty"`
}

type ReviewService interface {
	GetReview(ctx context.Context, requestID string) (*ReviewResponse, error)
}

var (
	ErrServiceUnavailable   = errors.New("review gateway unavailable")
	ErrRequestNotRegistered = errors.New("request not registered in review gateway")
)

type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

func NewRateLimitError(headers http.Header) *RateLimitError {
	return &RateLimitError{
		RetryAfter: ParseRetryAfter(headers),
	}
}
