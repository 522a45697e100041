package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/models"
	"github.com/avdeev99/fundplay/internal/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Виды событий сессии
const (
	EventSignedIn      = "SIGNED_IN"
	EventProfileLoaded = "PROFILE_LOADED"
	EventSignedOut     = "SIGNED_OUT"
)

var (
	// ErrSessionLoadFailed - профиль прочитать не удалось, сессия принудительно завершена
	ErrSessionLoadFailed = errors.New("session load failed")
)

// SessionEvent - событие изменения состояния сессии для подписчиков
type SessionEvent struct {
	Kind    string
	UserID  string
	Profile *models.UserProfile
}

type SessionService interface {
	Load(ctx context.Context, userID string) (*models.UserProfile, error)
	Current(userID string) *models.UserProfile
	Clear(userID string)
	ApplyCommit(userID string, gameID string, balance decimal.Decimal)
	Events() <-chan SessionEvent
}

// Sessions - хранилище сессий: кэш снимков профилей вошедших пользователей.
// Кэшированный баланс изменяют только полная загрузка профиля и подтверждённое
// списание, другим компонентам запись недоступна.
type Sessions struct {
	Users    storage.UsersStorage
	Profiles storage.ProfilesStorage

	mu     sync.Mutex
	cache  map[string]*models.UserProfile
	group  singleflight.Group
	events chan SessionEvent
}

// Создание сервиса
func NewSessions(users storage.UsersStorage, profiles storage.ProfilesStorage) *Sessions {
	return &Sessions{
		Users:    users,
		Profiles: profiles,
		cache:    make(map[string]*models.UserProfile),
		events:   make(chan SessionEvent, 16),
	}
}

// Load - загрузка профиля в кэш сессии. Отсутствующий профиль создаётся заново
// с настройками по умолчанию. Для одного пользователя выполняется не больше
// одной загрузки одновременно.
func (s *Sessions) Load(ctx context.Context, userID string) (*models.UserProfile, error) {
	s.publish(SessionEvent{Kind: EventSignedIn, UserID: userID})

	value, err, _ := s.group.Do(userID, func() (interface{}, error) {
		return s.load(ctx, userID)
	})
	if err != nil {
		// чтение не удалось: безопаснее завершить сессию, чем показать
		// устаревший или неполный баланс
		s.Clear(userID)
		return nil, fmt.Errorf("%w: %s", ErrSessionLoadFailed, err.Error())
	}

	profile := value.(*models.UserProfile)

	s.mu.Lock()
	s.cache[userID] = profile
	s.mu.Unlock()

	s.publish(SessionEvent{Kind: EventProfileLoaded, UserID: userID, Profile: profile})

	// фиксируем время входа, неудача не мешает работе пользователя
	go s.touchLogin(userID)

	return profile, nil
}

func (s *Sessions) load(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.Profiles.GetProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, storage.ErrProfileNotFound) {
		return nil, err
	}

	// профиль отсутствует: создаём по умолчанию и перечитываем
	logger.Warn("Profile not found, creating a default one", userID)
	user, err := s.Users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err = s.Profiles.CreateProfile(ctx, userID, DeriveDisplayName(user.DisplayName, user.Email)); err != nil {
		return nil, err
	}
	return s.Profiles.GetProfile(ctx, userID)
}

// Current - кэшированный снимок профиля, nil если сессии нет
func (s *Sessions) Current(userID string) *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[userID]
}

// Clear - полная и безусловная очистка кэша сессии при выходе
func (s *Sessions) Clear(userID string) {
	s.mu.Lock()
	_, active := s.cache[userID]
	delete(s.cache, userID)
	s.mu.Unlock()

	if active {
		s.publish(SessionEvent{Kind: EventSignedOut, UserID: userID})
	}
}

// ApplyCommit - точная фиксация результата подтверждённого списания в кэше.
// Баланс берётся из ответа хранилища, без локального пересчёта.
// Снимок в кэше заменяется целиком: выданные ранее указатели не изменяются,
// поэтому читатели работают со своим снимком без блокировки.
func (s *Sessions) ApplyCommit(userID string, gameID string, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.cache[userID]
	if !ok {
		return
	}
	next := profile.Clone()
	next.Balance = balance
	next.MarkPlayed(gameID)
	s.cache[userID] = next
}

// Events - канал событий сессий для презентационного слоя
func (s *Sessions) Events() <-chan SessionEvent {
	return s.events
}

func (s *Sessions) publish(event SessionEvent) {
	select {
	case s.events <- event:
	default:
		// подписчик не успевает, событие информационное и его можно потерять
	}
}

func (s *Sessions) touchLogin(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Profiles.TouchLogin(ctx, userID, time.Now()); err != nil {
		logger.Warn("Failed to touch login time:", err)
	}
}
