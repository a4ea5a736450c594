package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dontverifyme/internal/cache"

	"github.com/google/uuid"
)

// DefaultMfaChallengeTtl is how long an issued challenge stays
// consumable
const DefaultMfaChallengeTtl = 5 * time.Minute

type MfaChallenge struct {
	Id        string    `json:"id"`
	FactorId  string    `json:"factorId"`
	UserId    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type CreateMfaChallengeV1Opts struct {
	CachePrefix string

	FactorId string
	UserId   string
	Ttl      time.Duration
}

// CreateMfaChallengeV1 stores a single-use challenge in the cache and
// returns it. Verification consumes the entry so a challenge can only
// be used once
func CreateMfaChallengeV1(opts CreateMfaChallengeV1Opts) (*MfaChallenge, error) {
	ttl := DefaultMfaChallengeTtl
	if opts.Ttl != 0 {
		ttl = opts.Ttl
	}
	challenge := MfaChallenge{
		Id:        uuid.NewString(),
		FactorId:  opts.FactorId,
		UserId:    opts.UserId,
		ExpiresAt: time.Now().Add(ttl),
	}
	record, err := json.Marshal(challenge)
	if err != nil {
		return nil, fmt.Errorf("models.CreateMfaChallengeV1: failed to serialise challenge: %s", err)
	}
	cacheKey := strings.Join([]string{opts.CachePrefix, challenge.Id}, ":")
	if err := cache.Get().Set(cacheKey, string(record), ttl); err != nil {
		return nil, fmt.Errorf("models.CreateMfaChallengeV1: failed to update cache: %s", err)
	}
	return &challenge, nil
}

type ConsumeMfaChallengeV1Opts struct {
	CachePrefix string

	ChallengeId string
}

// ConsumeMfaChallengeV1 retrieves and deletes a challenge. A missing
// entry means the challenge expired or was already consumed
func ConsumeMfaChallengeV1(opts ConsumeMfaChallengeV1Opts) (*MfaChallenge, error) {
	cacheKey := strings.Join([]string{opts.CachePrefix, opts.ChallengeId}, ":")
	record, err := cache.Get().Get(cacheKey)
	if err != nil {
		return nil, fmt.Errorf("models.ConsumeMfaChallengeV1: %w: %s", ErrorChallengeExpired, err)
	}
	challenge := MfaChallenge{}
	if err := json.Unmarshal([]byte(record), &challenge); err != nil {
		return nil, fmt.Errorf("models.ConsumeMfaChallengeV1: failed to parse challenge: %s", err)
	}
	if err := cache.Get().Del(cacheKey); err != nil {
		return nil, fmt.Errorf("models.ConsumeMfaChallengeV1: failed to consume challenge: %s", err)
	}
	return &challenge, nil
}
