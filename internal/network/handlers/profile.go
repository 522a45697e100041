package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/avdeev99/fundplay/internal/helpers"
	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/models"
	"github.com/avdeev99/fundplay/internal/services"
	"go.uber.org/zap"
)

// GetProfileHandler — получение профиля текущего пользователя
func GetProfileHandler(s services.SessionService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := loadProfile(w, r, s)
		if !ok {
			return
		}

		balance, _ := profile.Balance.Float64()
		played := make([]string, 0, len(profile.PlayedGames))
		for gameID := range profile.PlayedGames {
			played = append(played, gameID)
		}
		sort.Strings(played)

		response := models.ProfileResponse{
			Name:        profile.DisplayName,
			Balance:     balance,
			PlayedGames: played,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// GetBalanceHandler — получение текущего баланса пользователя
func GetBalanceHandler(s services.SessionService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := loadProfile(w, r, s)
		if !ok {
			return
		}

		balance, _ := profile.Balance.Float64()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(models.BalanceResponse{Current: balance}); err != nil {
			logger.Error("Failed to encode JSON response:", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	})
}

// loadProfile - профиль из кэша сессии или его загрузка. Неудачное чтение
// принудительно завершает сессию: показать устаревший баланс хуже, чем
// попросить войти заново.
func loadProfile(w http.ResponseWriter, r *http.Request, s services.SessionService) (*models.UserProfile, bool) {
	userID, err := helpers.GetUserID(r.Context())
	if err != nil {
		logger.Warn("Failed to get user id:", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}

	profile := s.Current(userID)
	if profile == nil {
		profile, err = s.Load(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to load profile:", zap.Error(err))
			http.Error(w, "Session expired. Please sign in again.", http.StatusUnauthorized)
			return nil, false
		}
	}
	return profile, true
}
