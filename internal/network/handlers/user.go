package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avdeev99/fundplay/internal/helpers"
	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/models"
	"github.com/avdeev99/fundplay/internal/services"
)

// RegisterUserHandler — регистрация нового пользователя
func RegisterUserHandler(i services.IdentityService, s services.SessionService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// получение данных о пользователе
		var request models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Error("Failed to decode request", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}

		// регистрация в Identity
		user, err := i.RegisterUser(r.Context(), request)
		if err != nil {
			switch {
			// пользователь уже существует
			case errors.Is(err, services.ErrUserAlreadyExists):
				logger.Warn("Error register user", request.Email)
				http.Error(w, services.AuthErrorMessage(err), http.StatusConflict)
			case errors.Is(err, services.ErrInvalidEmail), errors.Is(err, services.ErrWeakPassword):
				http.Error(w, services.AuthErrorMessage(err), http.StatusBadRequest)
			default:
				// ошибка регистрации
				logger.Error("Error register user", err)
				http.Error(w, "Server error", http.StatusInternalServerError)
			}
			return
		}

		// загрузка профиля в кэш сессии
		if _, err = s.Load(r.Context(), user.UserID); err != nil {
			logger.Error("Failed to load profile after register", err)
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}

		// Генерация JWT токена для зарегистрированного пользователя
		token, err := i.GenerateJWT(user.UserID)
		if err != nil {
			logger.Error("Failed to generate token", err)
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}
		// Пользователь зарегистрирован и авторизован
		logger.Info("User registered and authenticated", request.Email)
		w.Header().Set("Authorization", "Bearer "+token)
		w.WriteHeader(http.StatusOK)
	})
}

// AuthenticateUserHandler — аутентификация пользователя
func AuthenticateUserHandler(i services.IdentityService, s services.SessionService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// получение данных о пользователе
		var request models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Error("Failed to decode request", err)
			http.Error(w, "Invalid request format", http.StatusBadRequest)
			return
		}
		// аутентификация в Identity
		user, err := i.AuthenticateUser(r.Context(), request)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnknownUser), errors.Is(err, services.ErrWrongPassword):
				logger.Warn("Authentication failed", request.Email)
				http.Error(w, services.AuthErrorMessage(err), http.StatusUnauthorized)
			case errors.Is(err, services.ErrUserDisabled):
				http.Error(w, services.AuthErrorMessage(err), http.StatusForbidden)
			default:
				logger.Error("Error authenticate user", err)
				http.Error(w, "Server error", http.StatusInternalServerError)
			}
			return
		}

		// загрузка профиля в кэш сессии; неудача чтения завершает сессию
		if _, err = s.Load(r.Context(), user.UserID); err != nil {
			logger.Error("Failed to load profile after login", err)
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}

		// генерация токена
		token, err := i.GenerateJWT(user.UserID)
		if err != nil {
			logger.Error("Failed to generate token", err)
			http.Error(w, "Server error", http.StatusInternalServerError)
			return
		}

		// пользователь прошел авторизацию
		logger.Info("User authenticated", request.Email)
		w.Header().Set("Authorization", "Bearer "+token)
		w.WriteHeader(http.StatusOK)
	})
}

// LogoutUserHandler — выход пользователя. Кэш сессии очищается безусловно,
// неподтверждённые намерения списания выход не переживают
func LogoutUserHandler(s services.SessionService, sp services.SpendService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := helpers.GetUserID(r.Context())
		if err != nil {
			logger.Warn("Failed to get user id:", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		sp.DiscardIntents(userID)
		s.Clear(userID)
		w.WriteHeader(http.StatusOK)
	})
}
