package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dontverifyme/internal/cache"
)

type RefreshSessionAalV1Opts struct {
	CachePrefix string

	Session *Session

	// VerifiedFactorCount is how many verified factors the user holds
	// after the mutation that triggered the refresh
	VerifiedFactorCount int
}

// RefreshSessionAalV1 rewrites a session's reachable assurance level
// after the user's verified factor set changes, so that a factor
// verified mid-session makes aal2 reachable on that very session and
// removing the last one stops demanding a step-up. The level the
// session has already reached is left untouched and the cache entry
// keeps the session's original expiry
func RefreshSessionAalV1(opts RefreshSessionAalV1Opts) error {
	if opts.Session == nil {
		return fmt.Errorf("models.RefreshSessionAalV1: missing session: %w", ErrorInvalidInput)
	}
	ttl := time.Until(opts.Session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("models.RefreshSessionAalV1: session already expired: %w", ErrorNotFound)
	}
	nextLevel := AalSingleFactor
	if opts.VerifiedFactorCount > 0 {
		nextLevel = AalMultiFactor
	}
	currentLevel := opts.Session.CurrentLevel
	if currentLevel == "" {
		currentLevel = AalSingleFactor
	}
	record, err := json.Marshal(sessionRecord{
		SessionId:    opts.Session.Id,
		CurrentLevel: currentLevel,
		NextLevel:    nextLevel,
	})
	if err != nil {
		return fmt.Errorf("models.RefreshSessionAalV1: failed to serialise session record: %s", err)
	}
	cacheKey := strings.Join([]string{opts.CachePrefix, opts.Session.UserId, opts.Session.Id}, ":")
	if err := cache.Get().Set(cacheKey, string(record), ttl); err != nil {
		return fmt.Errorf("models.RefreshSessionAalV1: failed to update cache: %s", err)
	}
	return nil
}
