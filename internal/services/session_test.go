package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/avdeev99/fundplay/internal/config"
	"github.com/avdeev99/fundplay/internal/logger"
	"github.com/avdeev99/fundplay/internal/models"
	"github.com/avdeev99/fundplay/internal/storage"
	"github.com/avdeev99/fundplay/internal/storage/mocks"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newTestSessions(t *testing.T) (*Sessions, *mocks.MockUsersStorage, *mocks.MockProfilesStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockUsers := mocks.NewMockUsersStorage(ctrl)
	mockProfiles := mocks.NewMockProfilesStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	// отметка времени входа выполняется в фоне и может не успеть до конца теста
	mockProfiles.EXPECT().TouchLogin(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return NewSessions(mockUsers, mockProfiles), mockUsers, mockProfiles
}

func TestSessions_LoadExistingProfile(t *testing.T) {
	sessions, _, mockProfiles := newTestSessions(t)

	stored := &models.UserProfile{
		UserID:      "u1",
		DisplayName: "player1",
		Balance:     decimal.NewFromFloat(100.00),
		PlayedGames: map[string]bool{"g1": true},
	}
	// повторная загрузка существующего профиля не меняет ни баланс, ни набор игр
	mockProfiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(stored, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	profile, err := sessions.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if !profile.Balance.Equal(decimal.NewFromFloat(100.00)) {
		t.Errorf("Expected balance 100.00, got: '%s'", profile.Balance)
	}
	if !profile.HasPlayed("g1") {
		t.Errorf("Expected played game g1 to survive reload")
	}

	cached := sessions.Current("u1")
	if cached == nil || cached.UserID != "u1" {
		t.Errorf("Expected profile to be cached after load")
	}
}

func TestSessions_LoadCreatesDefaultProfile(t *testing.T) {
	sessions, mockUsers, mockProfiles := newTestSessions(t)

	created := &models.UserProfile{
		UserID:      "u1",
		DisplayName: "player1",
		Balance:     decimal.Zero,
		PlayedGames: map[string]bool{},
	}

	// отсутствующий профиль создаётся по умолчанию: нулевой баланс, пустой набор
	gomock.InOrder(
		mockProfiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(nil, storage.ErrProfileNotFound),
		mockUsers.EXPECT().GetUser(gomock.Any(), "u1").Return(
			&models.UserData{UserID: "u1", Email: "player1@mail.test"}, nil),
		mockProfiles.EXPECT().CreateProfile(gomock.Any(), "u1", "player1").Return(nil),
		mockProfiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(created, nil),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	profile, err := sessions.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if !profile.Balance.IsZero() {
		t.Errorf("Expected default balance 0.00, got: '%s'", profile.Balance)
	}
	if len(profile.PlayedGames) != 0 {
		t.Errorf("Expected empty played games set")
	}
}

func TestSessions_LoadFailureForcesSignOut(t *testing.T) {
	sessions, _, mockProfiles := newTestSessions(t)

	// прогреваем кэш
	mockProfiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(50.00)}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := sessions.Load(ctx, "u1"); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	// ошибка чтения (не "нет профиля") принудительно завершает сессию:
	// лучше запросить вход заново, чем показать устаревший баланс
	mockProfiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(nil, errors.New("connection reset"))

	_, err := sessions.Load(ctx, "u1")
	if !errors.Is(err, ErrSessionLoadFailed) {
		t.Fatalf("Expected ErrSessionLoadFailed, got: '%v'", err)
	}
	if sessions.Current("u1") != nil {
		t.Errorf("Expected cache to be cleared after failed load")
	}
}

func TestSessions_ClearDropsSnapshot(t *testing.T) {
	sessions, _, mockProfiles := newTestSessions(t)

	mockProfiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(50.00)}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := sessions.Load(ctx, "u1"); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	sessions.Clear("u1")
	if sessions.Current("u1") != nil {
		t.Errorf("Expected no cached profile after sign-out")
	}
}

func TestSessions_ApplyCommitSwapsSnapshot(t *testing.T) {
	sessions, _, mockProfiles := newTestSessions(t)

	mockProfiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(100.00), PlayedGames: map[string]bool{}}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := sessions.Load(ctx, "u1"); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	before := sessions.Current("u1")
	sessions.ApplyCommit("u1", "g1", decimal.NewFromFloat(60.00))

	// выданный ранее снимок не изменяется, фиксация заменяет снимок в кэше
	if before.HasPlayed("g1") {
		t.Errorf("Expected previously handed out snapshot to stay untouched")
	}
	if !before.Balance.Equal(decimal.NewFromFloat(100.00)) {
		t.Errorf("Expected old snapshot balance 100.00, got: '%s'", before.Balance)
	}

	after := sessions.Current("u1")
	if !after.HasPlayed("g1") {
		t.Errorf("Expected new snapshot to contain played game g1")
	}
	if !after.Balance.Equal(decimal.NewFromFloat(60.00)) {
		t.Errorf("Expected new snapshot balance 60.00, got: '%s'", after.Balance)
	}
}

func TestSessions_ConcurrentReadDuringCommit(t *testing.T) {
	sessions, _, mockProfiles := newTestSessions(t)

	mockProfiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.NewFromFloat(1000.00), PlayedGames: map[string]bool{}}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := sessions.Load(ctx, "u1"); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	// подтверждения и чтения снимка из разных горутин, проверяется детектором гонок
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			sessions.ApplyCommit("u1", fmt.Sprintf("g%d", i), decimal.NewFromInt(int64(1000-i)))
		}
	}()

	for i := 0; i < 100; i++ {
		profile := sessions.Current("u1")
		if profile == nil {
			t.Fatalf("Expected cached profile during concurrent commits")
		}
		profile.HasPlayed("g1")
		_ = profile.Balance.String()
	}
	<-done

	final := sessions.Current("u1")
	if !final.HasPlayed("g99") {
		t.Errorf("Expected all commits to be applied")
	}
}

func TestSessions_PublishesProfileLoadedEvent(t *testing.T) {
	sessions, _, mockProfiles := newTestSessions(t)

	mockProfiles.EXPECT().GetProfile(gomock.Any(), "u1").Return(
		&models.UserProfile{UserID: "u1", Balance: decimal.Zero}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := sessions.Load(ctx, "u1"); err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}

	kinds := make(map[string]bool)
	for i := 0; i < 2; i++ {
		select {
		case event := <-sessions.Events():
			kinds[event.Kind] = true
		case <-time.After(time.Second):
			t.Fatalf("Expected session events, got timeout")
		}
	}
	if !kinds[EventSignedIn] || !kinds[EventProfileLoaded] {
		t.Errorf("Expected SIGNED_IN and PROFILE_LOADED events, got: %v", kinds)
	}
}
