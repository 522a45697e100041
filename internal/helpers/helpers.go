package helpers

import (
	"context"
	"fmt"

	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/go-chi/jwtauth/v5"
)

// GetUserID - извлекает идентификатор пользователя из контекста JWT токена
func GetUserID(context context.Context) (string, error) {
	_, claims, _ := jwtauth.FromContext(context)
	userID, ok := claims["uid"].(string)
	if !ok {
		logger.Warn("Undefined user id from token")
		return "", fmt.Errorf("undefined user id")
	}
	return userID, nil
}
