package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avdeev99/fundplay/internal/helpers"
	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/models"
	"github.com/avdeev99/fundplay/internal/services"
	"github.com/avdeev99/fundplay/internal/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GetGamesHandler — каталог игр с отметками о сыгранных
func GetGamesHandler(sp services.SpendService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := helpers.GetUserID(r.Context())
		if err != nil {
			logger.Warn("Failed to get user id:", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		games, err := sp.ListGames(r.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrSessionLoadFailed) {
				http.Error(w, "Session expired. Please sign in again.", http.StatusUnauthorized)
				return
			}
			logger.Error("Failed to get games:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(games); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// PriceSpendHandler — создание намерения списания с предварительной проверкой
func PriceSpendHandler(sp services.SpendService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := helpers.GetUserID(r.Context())
		if err != nil {
			logger.Warn("Failed to get user id:", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		var request models.SpendRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		intent, err := sp.Price(r.Context(), userID, request.GameID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrGameAlreadyPlayed):
				http.Error(w, "Game already played", http.StatusConflict)
			case errors.Is(err, services.ErrInsufficientFunds):
				http.Error(w, "Insufficient balance", http.StatusPaymentRequired)
			case errors.Is(err, storage.ErrGameNotFound):
				http.Error(w, "Game not found", http.StatusNotFound)
			case errors.Is(err, services.ErrSessionLoadFailed):
				http.Error(w, "Session expired. Please sign in again.", http.StatusUnauthorized)
			default:
				logger.Error("Failed to price spend:", zap.Error(err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}

		fee, _ := intent.Fee.Float64()
		balance, _ := intent.BalanceAtPri.Float64()
		after, _ := intent.BalanceAtPri.Sub(intent.Fee).Float64()

		response := models.SpendIntentResponse{
			IntentID:     intent.ID,
			GameTitle:    intent.GameTitle,
			EntryFee:     fee,
			Balance:      balance,
			BalanceAfter: after,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// ConfirmSpendHandler — подтверждение списания пользователем
func ConfirmSpendHandler(sp services.SpendService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := helpers.GetUserID(r.Context())
		if err != nil {
			logger.Warn("Failed to get user id:", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		intentID := chi.URLParam(r, "intent")
		intent, err := sp.Confirm(r.Context(), userID, intentID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrIntentNotFound):
				http.Error(w, "Spend intent not found", http.StatusNotFound)
			case errors.Is(err, services.ErrInsufficientFunds):
				http.Error(w, "Insufficient balance", http.StatusPaymentRequired)
			case errors.Is(err, services.ErrGameAlreadyPlayed):
				http.Error(w, "Game already played", http.StatusConflict)
			case errors.Is(err, services.ErrSpendAborted):
				http.Error(w, "Failed to process payment. Please try again.", http.StatusBadGateway)
			default:
				logger.Error("Failed to confirm spend:", zap.Error(err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}

		balance, _ := intent.BalanceAfter.Float64()
		response := models.SpendResultResponse{
			State:     intent.State,
			GameTitle: intent.GameTitle,
			Balance:   balance,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// CancelSpendHandler — отказ от намерения до подтверждения
func CancelSpendHandler(sp services.SpendService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := helpers.GetUserID(r.Context())
		if err != nil {
			logger.Warn("Failed to get user id:", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if err := sp.Cancel(userID, chi.URLParam(r, "intent")); err != nil {
			http.Error(w, "Spend intent not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
