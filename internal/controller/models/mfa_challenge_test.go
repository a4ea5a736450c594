package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"dontverifyme/internal/cache"
	"dontverifyme/internal/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v7"
)

func initTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %s", err)
	}
	t.Cleanup(server.Close)
	cache.Init(&cache.Instance{
		Client:      redis.NewClient(&redis.Options{Addr: server.Addr()}),
		ServiceLogs: common.GetNoopServiceLog(),
	})
	return server
}

func TestMfaChallengeIsSingleUse(t *testing.T) {
	initTestCache(t)

	challenge, err := CreateMfaChallengeV1(CreateMfaChallengeV1Opts{
		CachePrefix: "mfa-challenge",
		FactorId:    "factor-1",
		UserId:      "user-1",
	})
	if err != nil {
		t.Fatalf("failed to create challenge: %s", err)
	}
	if challenge.Id == "" {
		t.Errorf("expected challenge to have an id")
	}

	consumed, err := ConsumeMfaChallengeV1(ConsumeMfaChallengeV1Opts{
		CachePrefix: "mfa-challenge",
		ChallengeId: challenge.Id,
	})
	if err != nil {
		t.Fatalf("failed to consume challenge: %s", err)
	}
	if consumed.FactorId != "factor-1" {
		t.Errorf("expected factorId[factor-1], got factorId[%s]", consumed.FactorId)
	}
	if consumed.UserId != "user-1" {
		t.Errorf("expected userId[user-1], got userId[%s]", consumed.UserId)
	}

	if _, err := ConsumeMfaChallengeV1(ConsumeMfaChallengeV1Opts{
		CachePrefix: "mfa-challenge",
		ChallengeId: challenge.Id,
	}); !errors.Is(err, ErrorChallengeExpired) {
		t.Errorf("expected a second consume to fail with ErrorChallengeExpired, got: %s", err)
	}
}

func TestMfaChallengeExpires(t *testing.T) {
	server := initTestCache(t)

	challenge, err := CreateMfaChallengeV1(CreateMfaChallengeV1Opts{
		CachePrefix: "mfa-challenge",
		FactorId:    "factor-1",
		UserId:      "user-1",
		Ttl:         2 * time.Minute,
	})
	if err != nil {
		t.Fatalf("failed to create challenge: %s", err)
	}

	server.FastForward(3 * time.Minute)

	if _, err := ConsumeMfaChallengeV1(ConsumeMfaChallengeV1Opts{
		CachePrefix: "mfa-challenge",
		ChallengeId: challenge.Id,
	}); !errors.Is(err, ErrorChallengeExpired) {
		t.Errorf("expected an expired challenge to fail with ErrorChallengeExpired, got: %s", err)
	}
}

func TestAdvanceSessionAalV1(t *testing.T) {
	initTestCache(t)

	session := &Session{
		Id:        "sess-1",
		UserId:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := AdvanceSessionAalV1(AdvanceSessionAalV1Opts{
		CachePrefix: "session",
		Session:     session,
	}); err != nil {
		t.Fatalf("failed to advance session: %s", err)
	}

	stored, err := cache.Get().Get("session:user-1:sess-1")
	if err != nil {
		t.Fatalf("failed to read session record: %s", err)
	}
	record := sessionRecord{}
	if err := json.Unmarshal([]byte(stored), &record); err != nil {
		t.Fatalf("failed to parse session record: %s", err)
	}
	if record.CurrentLevel != AalMultiFactor {
		t.Errorf("expected currentLevel[%s], got currentLevel[%s]", AalMultiFactor, record.CurrentLevel)
	}
	if record.NextLevel != AalMultiFactor {
		t.Errorf("expected nextLevel[%s], got nextLevel[%s]", AalMultiFactor, record.NextLevel)
	}
}

func TestAdvanceSessionAalV1RejectsExpiredSession(t *testing.T) {
	initTestCache(t)

	session := &Session{
		Id:        "sess-1",
		UserId:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := AdvanceSessionAalV1(AdvanceSessionAalV1Opts{
		CachePrefix: "session",
		Session:     session,
	}); !errors.Is(err, ErrorNotFound) {
		t.Errorf("expected an expired session to fail with ErrorNotFound, got: %s", err)
	}

	if err := AdvanceSessionAalV1(AdvanceSessionAalV1Opts{
		CachePrefix: "session",
	}); !errors.Is(err, ErrorInvalidInput) {
		t.Errorf("expected a missing session to fail with ErrorInvalidInput, got: %s", err)
	}
}
