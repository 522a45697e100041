package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avdeev99/fundplay/internal/helpers"
	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/models"
	"github.com/avdeev99/fundplay/internal/services"
	"go.uber.org/zap"
)

// SubmitTopUpHandler — приём заявки на ручное пополнение баланса.
// Запись только добавляется, автоматических повторов при неудаче нет.
func SubmitTopUpHandler(t services.TopUpService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := helpers.GetUserID(r.Context())
		if err != nil {
			logger.Warn("Failed to get user id:", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		var request models.TopUpRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("Invalid request format:", zap.Error(err))
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		topup, err := t.SubmitRequest(r.Context(), userID, request)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidTopUpAmount):
				http.Error(w, "Invalid amount", http.StatusBadRequest)
			case errors.Is(err, services.ErrMissingRequisites):
				http.Error(w, "Please fill in all required fields", http.StatusBadRequest)
			default:
				logger.Error("Failed to submit top-up request:", zap.Error(err))
				http.Error(w, "Failed to submit payment request. Please try again.", http.StatusInternalServerError)
			}
			return
		}

		amount, _ := topup.Amount.Float64()
		response := models.TopUpResponse{
			ID:     topup.ID,
			Amount: amount,
			Status: topup.Status,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			return
		}
	})
}
