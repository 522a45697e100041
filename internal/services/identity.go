package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avdeev99/fundplay/internal/config"
	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/models"
	"github.com/avdeev99/fundplay/internal/storage"
	"github.com/avdeev99/fundplay/internal/validators"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Ошибки аутентификации, каждая транслируется в своё сообщение пользователю
var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrWeakPassword      = errors.New("password is too weak")
	ErrUnknownUser       = errors.New("unknown user")
	ErrWrongPassword     = errors.New("wrong password")
	ErrUserDisabled      = errors.New("user disabled")
)

const (
	TokenSecterAlgo     = "HS256"
	TokenExpirationTime = 24 * time.Hour

	MinPasswordLength = 6
)

type IdentityService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (*models.UserData, error)
	AuthenticateUser(ctx context.Context, request models.LoginRequest) (*models.UserData, error)
	GenerateJWT(userID string) (string, error)
	GetTokenAuth() *jwtauth.JWTAuth
}

type Identity struct {
	JWTAuth  *jwtauth.JWTAuth
	Users    storage.UsersStorage
	Profiles storage.ProfilesStorage
}

// Создание сервиса
func NewIdentity(cfg config.Config, users storage.UsersStorage, profiles storage.ProfilesStorage) IdentityService {
	tokenAuth := jwtauth.New(TokenSecterAlgo, []byte(cfg.Server.JWTSecret), nil)
	return &Identity{JWTAuth: tokenAuth, Users: users, Profiles: profiles}
}

// RegisterUser - регистрация нового пользователя вместе с профилем по умолчанию
func (i *Identity) RegisterUser(ctx context.Context, request models.RegisterRequest) (*models.UserData, error) {
	logger.Info("Register user:", request.Email)

	if !validators.CheckEmail(request.Email) {
		return nil, ErrInvalidEmail
	}
	if len(request.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Error generating password hash", err)
		return nil, err
	}

	user := models.UserData{
		UserID:       uuid.New().String(),
		Email:        request.Email,
		PasswordHash: string(hashedPassword),
		DisplayName:  DeriveDisplayName(request.Name, request.Email),
	}

	if err = i.Users.AddUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			logger.Warn("User already exist", request.Email)
			return nil, ErrUserAlreadyExists
		}
		logger.Error("Error registering user", request.Email, err)
		return nil, err
	}

	// новому пользователю сразу заводится профиль: нулевой баланс, пустой набор игр
	if err = i.Profiles.CreateProfile(ctx, user.UserID, user.DisplayName); err != nil {
		logger.Error("Error creating default profile", user.UserID, err)
		return nil, err
	}

	return &user, nil
}

// AuthenticateUser - аутентификация пользователя по почте и паролю
func (i *Identity) AuthenticateUser(ctx context.Context, request models.LoginRequest) (*models.UserData, error) {
	logger.Info("Authenticate user", request.Email)

	user, err := i.Users.GetUserByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("User not found", request.Email)
			return nil, ErrUnknownUser
		}
		logger.Error("Error getting user", err)
		return nil, err
	}

	if user.Disabled {
		logger.Warn("User is disabled", request.Email)
		return nil, ErrUserDisabled
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		logger.Warn("Invalid password", request.Email)
		return nil, ErrWrongPassword
	}

	logger.Info("User authenticated", request.Email)
	return user, nil
}

// Создание строки JWT токена
func (i *Identity) GenerateJWT(userID string) (string, error) {
	expirationTime := time.Now().Add(TokenExpirationTime)

	_, tokenString, err := i.JWTAuth.Encode(map[string]interface{}{
		"uid": userID,
		"exp": expirationTime,
	})
	return tokenString, err
}

// Возвращаем указатель на JWTAuth (chi)
func (i *Identity) GetTokenAuth() *jwtauth.JWTAuth {
	return i.JWTAuth
}

// DeriveDisplayName - имя по умолчанию выводится из локальной части почты
func DeriveDisplayName(name string, email string) string {
	name = strings.TrimSpace(name)
	if name != "" {
		return name
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "Player"
}

// AuthErrorMessage - трансляция ошибки аутентификации в текст для пользователя.
// Никакая "сырая" ошибка транспорта до пользователя не доходит.
func AuthErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return "Invalid email address format."
	case errors.Is(err, ErrUserDisabled):
		return "This user account has been disabled."
	case errors.Is(err, ErrUnknownUser):
		return "No user found with this email. Please sign up."
	case errors.Is(err, ErrWrongPassword):
		return "Incorrect password."
	case errors.Is(err, ErrUserAlreadyExists):
		return "This email is already registered. Try logging in."
	case errors.Is(err, ErrWeakPassword):
		return "Password is too weak. Must be at least 6 characters."
	default:
		return "Network error. Please try again."
	}
}
