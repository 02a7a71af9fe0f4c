package session

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/benscoapp/collector-sdk/model"
	"github.com/benscoapp/collector-sdk/store/memory"
)

func newTestStore() *Store {
	logger := zerolog.Nop()
	return NewStore(memory.New(), &logger)
}

func sampleSession() *model.Session {
	return &model.Session{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User: &model.User{
			ID:                 "u-1",
			Username:           "ama",
			Email:              "ama@bensco.app",
			Role:               "collector",
			UniqueCode:         "COL-0001",
			MustChangePassword: false,
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	want := sampleSession()
	if err := s.Save(ctx, want); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestSaveRejectsIncompleteSession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	if err := s.Save(ctx, &model.Session{AccessToken: "tok"}); !errors.Is(err, ErrIncompleteSession) {
		t.Fatalf("err = %v, want ErrIncompleteSession", err)
	}
	if err := s.Save(ctx, nil); !errors.Is(err, ErrIncompleteSession) {
		t.Fatalf("err = %v, want ErrIncompleteSession", err)
	}
}

func TestClearThenLoadIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	if err := s.Save(ctx, sampleSession()); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("Load after Clear = %+v, want nil", got)
	}

	if _, err := s.AttemptOfflineLogin(ctx); !errors.Is(err, ErrNoCachedSession) {
		t.Fatalf("offline login after Clear = %v, want ErrNoCachedSession", err)
	}

	// Clear is idempotent
	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestAttemptOfflineLoginTrustsCachedSession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	want := sampleSession()
	if err := s.Save(ctx, want); err != nil {
		t.Fatal(err)
	}

	got, err := s.AttemptOfflineLogin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.User, want.User) {
		t.Fatalf("offline user = %+v, want %+v", got.User, want.User)
	}
}

func TestUpdateAccessTokenKeepsRestOfSession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	if err := s.Save(ctx, sampleSession()); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateAccessToken(ctx, "access-2"); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.AccessToken != "access-2" {
		t.Fatalf("access token = %q, want access-2", got.AccessToken)
	}
	if got.RefreshToken != "refresh-1" || got.User == nil {
		t.Fatal("refresh token or user lost on access token update")
	}
}

func TestCredentialsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	creds, err := s.LoadCredentials(ctx)
	if err != nil || creds != nil {
		t.Fatalf("LoadCredentials on empty store = %+v, %v", creds, err)
	}

	if err := s.SaveCredentials(ctx, "ama@bensco.app", "hunter2"); err != nil {
		t.Fatal(err)
	}
	creds, err = s.LoadCredentials(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if creds == nil || creds.Email != "ama@bensco.app" || creds.Password != "hunter2" {
		t.Fatalf("LoadCredentials = %+v", creds)
	}

	if err := s.ClearCredentials(ctx); err != nil {
		t.Fatal(err)
	}
	creds, err = s.LoadCredentials(ctx)
	if err != nil || creds != nil {
		t.Fatalf("LoadCredentials after clear = %+v, %v", creds, err)
	}
}

func TestDeviceIDIsStable(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	first, err := s.DeviceID(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if first == "" {
		t.Fatal("empty device ID")
	}

	second, err := s.DeviceID(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Fatalf("device ID changed between calls: %q then %q", first, second)
	}
}
