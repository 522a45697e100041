package worker

import (
	"context"
	"sync"
	"time"

	"github.com/avdeev99/fundplay/internal/config"
	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/services"
	"github.com/sony/gobreaker"
)

func InitCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "review-gateway",
		Timeout: 30 * time.Second, // через 30 сек пробуем подключиться
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 5 попыток достучатся до сервиса
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Circuit Breaker '%s': %s → %s", name, from, to)
		},
	})
}

// TopUpWorker - фоновый обработчик заявок на пополнение баланса
type TopUpWorker struct {
	TopUps            services.TopUpService
	Breaker           *gobreaker.CircuitBreaker
	WaitGroup         sync.WaitGroup
	QuitChan          chan struct{}
	BatchSize         int
	PollInterval      time.Duration
	ProcessingTimeout time.Duration
}

// NewTopUpWorker - конструктор обработчика вердиктов внешней проверки заявок
func NewTopUpWorker(cfg config.ReviewConfig, topups services.TopUpService) *TopUpWorker {
	return &TopUpWorker{
		TopUps:            topups,
		Breaker:           InitCircuitBreaker(),
		QuitChan:          make(chan struct{}),
		BatchSize:         cfg.BatchSize,
		PollInterval:      cfg.PollInterval,
		ProcessingTimeout: cfg.ProcessingTimeout,
	}
}

// Start - запускает воркер в фоне
func (w *TopUpWorker) Start(ctx context.Context) {
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает воркер
func (w *TopUpWorker) Stop() {
	close(w.QuitChan)
	w.WaitGroup.Wait()
}

// Run - основная рабочая логика
func (w *TopUpWorker) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("TopUpWorker signal stop")
			return
		case <-ticker.C:
			w.ProcessRequests(ctx)
		}
	}
}

// ProcessRequests - обработка пачки заявок
func (w *TopUpWorker) ProcessRequests(ctx context.Context) {
	if w.Breaker.State() == gobreaker.StateOpen {
		logger.Warn("%s unavailable. Waiting...", w.Breaker.Name())
		return
	}

	requestIDs, err := w.TopUps.GetPendingRequests(ctx, w.BatchSize)
	if err != nil {
		logger.Error("error get requests for processing", err)
		return
	}

	for _, requestID := range requestIDs {
		_, err := w.Breaker.Execute(func() (interface{}, error) {
			processingCtx, cancel := context.WithTimeout(ctx, w.ProcessingTimeout)
			defer cancel()
			return nil, w.TopUps.ProcessRequest(processingCtx, requestID)
		})

		if err != nil {
			logger.Error("Error request processing", err)
		}
	}
}
