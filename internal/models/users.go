package models

// RegisterRequest - модель для регистрации пользователя, приходит извне
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest - модель для аутентификации пользователя, приходит извне
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserData - модель пользователя из хранилища
type UserData struct {
	UserID       string
	Email        string
	PasswordHash string
	DisplayName  string
	Disabled     bool
}
