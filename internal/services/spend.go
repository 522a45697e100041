package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/models"
	"github.com/avdeev99/fundplay/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds for game entry")
	ErrGameAlreadyPlayed = errors.New("game already played")
	ErrIntentNotFound    = errors.New("spend intent not found")
	// ErrSpendAborted - сбой транспорта при подтверждении: неизвестно, прошла
	// ли запись, кэш не трогаем, пользователь может повторить с новым намерением
	ErrSpendAborted = errors.New("spend aborted")
)

// Неподтверждённое намерение живёт ограниченное время, брошенный диалог
// не должен копиться в памяти
const IntentTTL = 15 * time.Minute

type SpendService interface {
	ListGames(ctx context.Context, userID string) ([]models.GameResponse, error)
	Price(ctx context.Context, userID string, gameID string) (*models.SpendIntent, error)
	Confirm(ctx context.Context, userID string, intentID string) (*models.SpendIntent, error)
	Cancel(userID string, intentID string) error
	DiscardIntents(userID string)
}

// Spend - движок списаний. Намерение проходит состояния
// PRICED → COMMITTED | REJECTED | ABORTED, отмена просто удаляет намерение.
type Spend struct {
	Sessions SessionService
	Profiles storage.ProfilesStorage
	Games    storage.GamesStorage

	mu      sync.Mutex
	intents map[string]*models.SpendIntent
}

// Создание сервиса
func NewSpend(sessions SessionService, profiles storage.ProfilesStorage, games storage.GamesStorage) SpendService {
	return &Spend{
		Sessions: sessions,
		Profiles: profiles,
		Games:    games,
		intents:  make(map[string]*models.SpendIntent),
	}
}

// ListGames - каталог игр с отметками о сыгранных
func (s *Spend) ListGames(ctx context.Context, userID string) ([]models.GameResponse, error) {
	profile, err := s.currentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	games, err := s.Games.GetGames(ctx)
	if err != nil {
		return nil, err
	}

	var response []models.GameResponse
	for _, game := range games {
		fee, _ := game.EntryFee.Float64()
		response = append(response, models.GameResponse{
			ID:       game.ID,
			Title:    game.Title,
			Prize:    game.Prize,
			EntryFee: fee,
			Played:   profile.HasPlayed(game.ID),
		})
	}
	return response, nil
}

// Price - предварительная проверка допустимости списания по кэшу сессии.
// Сыгранная игра отклоняется до любой проверки баланса, нехватка средств
// отклоняется без единой записи в хранилище.
func (s *Spend) Price(ctx context.Context, userID string, gameID string) (*models.SpendIntent, error) {
	profile, err := s.currentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.HasPlayed(gameID) {
		return nil, ErrGameAlreadyPlayed
	}

	game, gameErr := s.Games.GetGame(ctx, gameID)
	if gameErr != nil {
		return nil, gameErr
	}

	// проверка по кэшу может опираться на устаревший баланс, настоящая защита
	// выполняется при подтверждении; здесь отсекается заведомо лишний диалог
	if profile.Balance.LessThan(game.EntryFee) {
		return nil, ErrInsufficientFunds
	}

	intent := &models.SpendIntent{
		ID:           uuid.New().String(),
		UserID:       userID,
		GameID:       game.ID,
		GameTitle:    game.Title,
		Fee:          game.EntryFee,
		BalanceAtPri: profile.Balance,
		State:        models.IntentStatePriced,
		CreatedAt:    time.Now(),
	}

	s.mu.Lock()
	s.sweepExpired()
	s.intents[intent.ID] = intent
	s.mu.Unlock()

	return intent, nil
}

// Confirm - подтверждение списания. Баланс перечитывается из хранилища, а не
// из кэша, и повторно сверяется с платой; списание и отметка игры выполняются
// одной атомарной записью. Условие `balance >= fee` проверяется ещё раз самим
// хранилищем, так что баланс не уйдёт в минус даже при гонке двух сессий.
func (s *Spend) Confirm(ctx context.Context, userID string, intentID string) (*models.SpendIntent, error) {
	intent, err := s.takeIntent(userID, intentID)
	if err != nil {
		return nil, err
	}

	// авторитетное состояние, кэш мог устареть
	profile, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		s.resolve(intent, models.IntentStateAborted)
		logger.Error("Failed to re-read profile on confirm:", zap.Error(err))
		return intent, ErrSpendAborted
	}

	if profile.Balance.LessThan(intent.Fee) {
		s.resolve(intent, models.IntentStateRejected)
		return intent, ErrInsufficientFunds
	}

	balance, err := s.Profiles.SpendOnGame(ctx, userID, intent.GameID, intent.Fee)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			s.resolve(intent, models.IntentStateRejected)
			return intent, ErrGameAlreadyPlayed
		case errors.Is(err, storage.ErrInsufficientBalance):
			// баланс изменился между перечитыванием и записью
			s.resolve(intent, models.IntentStateRejected)
			return intent, ErrInsufficientFunds
		default:
			s.resolve(intent, models.IntentStateAborted)
			logger.Error("Failed to commit spend:", zap.Error(err))
			return intent, ErrSpendAborted
		}
	}

	// кэш приводится ровно к значению из хранилища
	s.Sessions.ApplyCommit(userID, intent.GameID, balance)
	intent.BalanceAfter = balance
	s.resolve(intent, models.IntentStateCommitted)

	logger.Info("Spend committed", "user", userID, "game", intent.GameID)
	return intent, nil
}

// Cancel - отказ от намерения до подтверждения, никаких побочных эффектов
func (s *Spend) Cancel(userID string, intentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[intentID]
	if !ok || intent.UserID != userID || intent.State != models.IntentStatePriced {
		return ErrIntentNotFound
	}
	delete(s.intents, intentID)
	return nil
}

// DiscardIntents - удаление всех намерений пользователя, вызывается при выходе:
// состояние сессии не переживает sign-out
func (s *Spend) DiscardIntents(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, intent := range s.intents {
		if intent.UserID == userID {
			delete(s.intents, id)
		}
	}
}

// currentProfile - кэшированный снимок профиля, при остывшем кэше профиль
// загружается в сессию заново
func (s *Spend) currentProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if profile := s.Sessions.Current(userID); profile != nil {
		return profile, nil
	}
	return s.Sessions.Load(ctx, userID)
}

// takeIntent - выборка намерения в состоянии PRICED; конечные состояния
// повторно не подтверждаются
func (s *Spend) takeIntent(userID string, intentID string) (*models.SpendIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[intentID]
	if !ok || intent.UserID != userID {
		return nil, ErrIntentNotFound
	}
	if intent.State != models.IntentStatePriced {
		return nil, ErrIntentNotFound
	}
	if time.Since(intent.CreatedAt) > IntentTTL {
		delete(s.intents, intentID)
		return nil, ErrIntentNotFound
	}
	return intent, nil
}

// sweepExpired - чистка брошенных намерений, вызывается под s.mu
func (s *Spend) sweepExpired() {
	for id, intent := range s.intents {
		if time.Since(intent.CreatedAt) > IntentTTL {
			delete(s.intents, id)
		}
	}
}

func (s *Spend) resolve(intent *models.SpendIntent, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent.State = state
	// конечное состояние, намерение больше не используется
	delete(s.intents, intent.ID)
}
