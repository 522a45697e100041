package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avdeev99/fundplay/internal/config"
	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/network/router"
	"github.com/avdeev99/fundplay/internal/storage"
	"github.com/avdeev99/fundplay/internal/worker"
)

func Run(config config.Config, storage storage.Storage) {

	router := router.NewRouter(config, storage)

	server := &http.Server{
		Addr:    config.Server.ListenAddr,
		Handler: router.HandleRouter(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Создание и запуск воркера обработки заявок на пополнение
	worker := worker.NewTopUpWorker(config.Review, router.TopUps)
	worker.Start(ctx)

	// журналирование событий сессий для презентационного слоя
	go func() {
		events := router.Sessions.Events()
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-events:
				logger.Info("session event", "kind", event.Kind, "user", event.UserID)
			}
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info(
			"Starting server config:", config,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("error listen server", err.Error())
		}
	}()

	<-stop
	logger.Info("Shutdown server")
	worker.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutdown server", err.Error())
	}
	logger.Info("Server stopped")
}
