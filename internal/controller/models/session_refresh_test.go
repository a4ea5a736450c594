package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"dontverifyme/internal/cache"
)

func TestRefreshSessionAalV1(t *testing.T) {
	initTestCache(t)

	session := &Session{
		Id:           "sess-1",
		UserId:       "user-1",
		CurrentLevel: AalSingleFactor,
		NextLevel:    AalSingleFactor,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	// verifying a first factor mid-session makes aal2 reachable on the
	// session the user is already on
	if err := RefreshSessionAalV1(RefreshSessionAalV1Opts{
		CachePrefix:         "session",
		Session:             session,
		VerifiedFactorCount: 1,
	}); err != nil {
		t.Fatalf("failed to refresh session: %s", err)
	}

	stored, err := cache.Get().Get("session:user-1:sess-1")
	if err != nil {
		t.Fatalf("failed to read session record: %s", err)
	}
	record := sessionRecord{}
	if err := json.Unmarshal([]byte(stored), &record); err != nil {
		t.Fatalf("failed to parse session record: %s", err)
	}
	if record.CurrentLevel != AalSingleFactor {
		t.Errorf("expected currentLevel[%s] to be preserved, got currentLevel[%s]", AalSingleFactor, record.CurrentLevel)
	}
	if record.NextLevel != AalMultiFactor {
		t.Errorf("expected nextLevel[%s], got nextLevel[%s]", AalMultiFactor, record.NextLevel)
	}
}

func TestRefreshSessionAalV1DropsNextLevelWithoutFactors(t *testing.T) {
	initTestCache(t)

	session := &Session{
		Id:           "sess-1",
		UserId:       "user-1",
		CurrentLevel: AalSingleFactor,
		NextLevel:    AalMultiFactor,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if err := RefreshSessionAalV1(RefreshSessionAalV1Opts{
		CachePrefix:         "session",
		Session:             session,
		VerifiedFactorCount: 0,
	}); err != nil {
		t.Fatalf("failed to refresh session: %s", err)
	}

	stored, err := cache.Get().Get("session:user-1:sess-1")
	if err != nil {
		t.Fatalf("failed to read session record: %s", err)
	}
	record := sessionRecord{}
	if err := json.Unmarshal([]byte(stored), &record); err != nil {
		t.Fatalf("failed to parse session record: %s", err)
	}
	if record.NextLevel != AalSingleFactor {
		t.Errorf("expected nextLevel[%s] once no verified factors remain, got nextLevel[%s]", AalSingleFactor, record.NextLevel)
	}
}

func TestRefreshSessionAalV1RejectsExpiredSession(t *testing.T) {
	initTestCache(t)

	session := &Session{
		Id:        "sess-1",
		UserId:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := RefreshSessionAalV1(RefreshSessionAalV1Opts{
		CachePrefix:         "session",
		Session:             session,
		VerifiedFactorCount: 1,
	}); !errors.Is(err, ErrorNotFound) {
		t.Errorf("expected an expired session to fail with ErrorNotFound, got: %s", err)
	}

	if err := RefreshSessionAalV1(RefreshSessionAalV1Opts{
		CachePrefix: "session",
	}); !errors.Is(err, ErrorInvalidInput) {
		t.Errorf("expected a missing session to fail with ErrorInvalidInput, got: %s", err)
	}
}
