package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avdeev99/fundplay/internal/config"
	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/models"
	"github.com/avdeev99/fundplay/internal/storage"
	"github.com/avdeev99/fundplay/internal/storage/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type spendFixture struct {
	Sessions *Sessions
	Spend    SpendService
	Profiles *mocks.MockProfilesStorage
	Games    *mocks.MockGamesStorage
}

func newSpendFixture(t *testing.T) *spendFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockUsers := mocks.NewMockUsersStorage(ctrl)
	mockProfiles := mocks.NewMockProfilesStorage(ctrl)
	mockGames := mocks.NewMockGamesStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	mockProfiles.EXPECT().TouchLogin(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	sessions := NewSessions(mockUsers, mockProfiles)
	return &spendFixture{
		Sessions: sessions,
		Spend:    NewSpend(sessions, mockProfiles, mockGames),
		Profiles: mockProfiles,
		Games:    mockGames,
	}
}

func testGame(fee float64) *models.GameData {
	return &models.GameData{
		ID:       "g1",
		Title:    "Lucky Draw",
		Prize:    "Rs. 500 voucher",
		EntryFee: decimal.NewFromFloat(fee),
	}
}

func TestSpend_PriceRejectsInsufficientFunds(t *testing.T) {
	fixture := newSpendFixture(t)

	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(30.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Games.EXPECT().GetGame(gomock.Any(), "g1").Return(testGame(40.00), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// недостаточный баланс отсекается предварительной проверкой, без записей
	_, err := fixture.Spend.Price(ctx, "u1", "g1")
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got: '%v'", err)
	}
}

func TestSpend_PriceRejectsPlayedGameFirst(t *testing.T) {
	fixture := newSpendFixture(t)

	// сыгранная игра отклоняется до проверки баланса и до чтения каталога,
	// поэтому GetGame здесь не ожидается
	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{
			UserID:      "u1",
			Balance:     decimal.NewFromFloat(500.00),
			PlayedGames: map[string]bool{"g1": true},
		}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := fixture.Spend.Price(ctx, "u1", "g1")
	if !errors.Is(err, ErrGameAlreadyPlayed) {
		t.Fatalf("Expected ErrGameAlreadyPlayed, got: '%v'", err)
	}
}

func TestSpend_ConfirmCommitsAndUpdatesCache(t *testing.T) {
	fixture := newSpendFixture(t)

	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Games.EXPECT().GetGame(gomock.Any(), "g1").Return(testGame(40.00), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	intent, err := fixture.Spend.Price(ctx, "u1", "g1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if intent.State != models.IntentStatePriced {
		t.Fatalf("Expected state PRICED, got: '%s'", intent.State)
	}

	// авторитетное перечитывание профиля и атомарное списание
	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Profiles.EXPECT().SpendOnGame(gomock.Any(), "u1", "g1", gomock.Any()).Return(
		decimal.NewFromFloat(60.00), nil)

	committed, err := fixture.Spend.Confirm(ctx, "u1", intent.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if committed.State != models.IntentStateCommitted {
		t.Errorf("Expected state COMMITTED, got: '%s'", committed.State)
	}
	if !committed.BalanceAfter.Equal(decimal.NewFromFloat(60.00)) {
		t.Errorf("Expected balance after 60.00, got: '%s'", committed.BalanceAfter)
	}

	// кэш сессии отражает ровно значение из хранилища
	cached := fixture.Sessions.Current("u1")
	if cached == nil {
		t.Fatalf("Expected cached profile after commit")
	}
	if !cached.Balance.Equal(decimal.NewFromFloat(60.00)) {
		t.Errorf("Expected cached balance 60.00, got: '%s'", cached.Balance)
	}
	if !cached.HasPlayed("g1") {
		t.Errorf("Expected game g1 to be marked as played")
	}
}

func TestSpend_ConfirmRejectsOnConcurrentBalanceDrop(t *testing.T) {
	fixture := newSpendFixture(t)

	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Games.EXPECT().GetGame(gomock.Any(), "g1").Return(testGame(40.00), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	intent, err := fixture.Spend.Price(ctx, "u1", "g1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	// баланс просел между оценкой и подтверждением
	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(10.00), PlayedGames: map[string]bool{}}, nil)

	rejected, err := fixture.Spend.Confirm(ctx, "u1", intent.ID)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got: '%v'", err)
	}
	if rejected.State != models.IntentStateRejected {
		t.Errorf("Expected state REJECTED, got: '%s'", rejected.State)
	}
}

func TestSpend_ConfirmAbortsOnStorageFault(t *testing.T) {
	fixture := newSpendFixture(t)

	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Games.EXPECT().GetGame(gomock.Any(), "g1").Return(testGame(40.00), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	intent, err := fixture.Spend.Price(ctx, "u1", "g1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Profiles.EXPECT().SpendOnGame(gomock.Any(), "u1", "g1", gomock.Any()).Return(
		decimal.Zero, errors.New("connection reset"))

	aborted, err := fixture.Spend.Confirm(ctx, "u1", intent.ID)
	if !errors.Is(err, ErrSpendAborted) {
		t.Fatalf("Expected ErrSpendAborted, got: '%v'", err)
	}
	if aborted.State != models.IntentStateAborted {
		t.Errorf("Expected state ABORTED, got: '%s'", aborted.State)
	}

	// при сбое кэш не трогаем: неизвестно, прошла ли запись
	cached := fixture.Sessions.Current("u1")
	if cached == nil {
		t.Fatalf("Expected cached profile to survive abort")
	}
	if !cached.Balance.Equal(decimal.NewFromFloat(100.00)) {
		t.Errorf("Expected cached balance unchanged 100.00, got: '%s'", cached.Balance)
	}
	if cached.HasPlayed("g1") {
		t.Errorf("Expected game g1 to stay unplayed after abort")
	}
}

func TestSpend_ConfirmRejectsReplayedGame(t *testing.T) {
	fixture := newSpendFixture(t)

	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Games.EXPECT().GetGame(gomock.Any(), "g1").Return(testGame(40.00), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	intent, err := fixture.Spend.Price(ctx, "u1", "g1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	// параллельная сессия успела сыграть ту же игру
	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Profiles.EXPECT().SpendOnGame(gomock.Any(), "u1", "g1", gomock.Any()).Return(
		decimal.Zero, storage.ErrAlreadyExists)

	rejected, err := fixture.Spend.Confirm(ctx, "u1", intent.ID)
	if !errors.Is(err, ErrGameAlreadyPlayed) {
		t.Fatalf("Expected ErrGameAlreadyPlayed, got: '%v'", err)
	}
	if rejected.State != models.IntentStateRejected {
		t.Errorf("Expected state REJECTED, got: '%s'", rejected.State)
	}
}

func TestSpend_CancelDiscardsIntent(t *testing.T) {
	fixture := newSpendFixture(t)

	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Games.EXPECT().GetGame(gomock.Any(), "g1").Return(testGame(40.00), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	intent, err := fixture.Spend.Price(ctx, "u1", "g1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	if err = fixture.Spend.Cancel("u1", intent.ID); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	// отменённое намерение подтвердить нельзя
	if _, err = fixture.Spend.Confirm(ctx, "u1", intent.ID); !errors.Is(err, ErrIntentNotFound) {
		t.Errorf("Expected ErrIntentNotFound, got: '%v'", err)
	}

	// кэшированный баланс не изменился
	cached := fixture.Sessions.Current("u1")
	if cached == nil || !cached.Balance.Equal(decimal.NewFromFloat(100.00)) {
		t.Errorf("Expected cached balance unchanged after cancel")
	}
}

func TestSpend_SignOutDiscardsIntents(t *testing.T) {
	fixture := newSpendFixture(t)

	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Games.EXPECT().GetGame(gomock.Any(), "g1").Return(testGame(40.00), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	intent, err := fixture.Spend.Price(ctx, "u1", "g1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	// выход пользователя: состояние сессии, включая намерения, не переживает sign-out
	fixture.Spend.DiscardIntents("u1")
	fixture.Sessions.Clear("u1")

	if _, err = fixture.Spend.Confirm(ctx, "u1", intent.ID); !errors.Is(err, ErrIntentNotFound) {
		t.Errorf("Expected ErrIntentNotFound after sign-out, got: '%v'", err)
	}
}

func TestSpend_ConfirmExpiredIntent(t *testing.T) {
	fixture := newSpendFixture(t)

	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Games.EXPECT().GetGame(gomock.Any(), "g1").Return(testGame(40.00), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	intent, err := fixture.Spend.Price(ctx, "u1", "g1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	// брошенный диалог: по истечении срока намерение подтвердить нельзя
	intent.CreatedAt = time.Now().Add(-IntentTTL - time.Minute)

	if _, err = fixture.Spend.Confirm(ctx, "u1", intent.ID); !errors.Is(err, ErrIntentNotFound) {
		t.Errorf("Expected ErrIntentNotFound for expired intent, got: '%v'", err)
	}
}

func TestSpend_PriceSweepsExpiredIntents(t *testing.T) {
	fixture := newSpendFixture(t)

	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Games.EXPECT().GetGame(gomock.Any(), "g1").Return(testGame(40.00), nil)
	fixture.Games.EXPECT().GetGame(gomock.Any(), "g2").Return(
		&models.GameData{ID: "g2", Title: "Spin Wheel", EntryFee: decimal.NewFromFloat(40.00)}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stale, err := fixture.Spend.Price(ctx, "u1", "g1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	stale.CreatedAt = time.Now().Add(-IntentTTL - time.Minute)

	// новая оценка попутно выметает просроченные намерения
	if _, err = fixture.Spend.Price(ctx, "u1", "g2"); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	if _, err = fixture.Spend.Confirm(ctx, "u1", stale.ID); !errors.Is(err, ErrIntentNotFound) {
		t.Errorf("Expected swept intent to be gone, got: '%v'", err)
	}
}

func TestSpend_ConfirmForeignIntent(t *testing.T) {
	fixture := newSpendFixture(t)

	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)
	fixture.Games.EXPECT().GetGame(gomock.Any(), "g1").Return(testGame(40.00), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	intent, err := fixture.Spend.Price(ctx, "u1", "g1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	// чужое намерение недоступно для подтверждения
	if _, err = fixture.Spend.Confirm(ctx, "u2", intent.ID); !errors.Is(err, ErrIntentNotFound) {
		t.Errorf("Expected ErrIntentNotFound, got: '%v'", err)
	}
}

func TestSpend_ListGamesMarksPlayed(t *testing.T) {
	fixture := newSpendFixture(t)

	fixture.Profiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{
			UserID:      "u1",
			Balance:     decimal.NewFromFloat(100.00),
			PlayedGames: map[string]bool{"g1": true},
		}, nil)
	fixture.Games.EXPECT().GetGames(gomock.Any()).Return([]models.GameData{
		*testGame(40.00),
		{ID: "g2", Title: "Spin Wheel", Prize: "Rs. 1000 voucher", EntryFee: decimal.NewFromFloat(100.00)},
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	games, err := fixture.Spend.ListGames(ctx, "u1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	expected := []models.GameResponse{
		{ID: "g1", Title: "Lucky Draw", Prize: "Rs. 500 voucher", EntryFee: 40.00, Played: true},
		{ID: "g2", Title: "Spin Wheel", Prize: "Rs. 1000 voucher", EntryFee: 100.00, Played: false},
	}
	if diff := cmp.Diff(expected, games); diff != "" {
		t.Errorf("Unexpected games list (-want +got):\n%s", diff)
	}
}
