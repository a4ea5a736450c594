package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dontverifyme/internal/cache"
)

type AdvanceSessionAalV1Opts struct {
	CachePrefix string

	Session *Session
}

// AdvanceSessionAalV1 raises a session's assurance level to aal2 after
// a successful second-factor verification. The cache entry keeps the
// session's original expiry
func AdvanceSessionAalV1(opts AdvanceSessionAalV1Opts) error {
	if opts.Session == nil {
		return fmt.Errorf("models.AdvanceSessionAalV1: missing session: %w", ErrorInvalidInput)
	}
	ttl := time.Until(opts.Session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("models.AdvanceSessionAalV1: session already expired: %w", ErrorNotFound)
	}
	record, err := json.Marshal(sessionRecord{
		SessionId:    opts.Session.Id,
		CurrentLevel: AalMultiFactor,
		NextLevel:    AalMultiFactor,
	})
	if err != nil {
		return fmt.Errorf("models.AdvanceSessionAalV1: failed to serialise session record: %s", err)
	}
	cacheKey := strings.Join([]string{opts.CachePrefix, opts.Session.UserId, opts.Session.Id}, ":")
	if err := cache.Get().Set(cacheKey, string(record), ttl); err != nil {
		return fmt.Errorf("models.AdvanceSessionAalV1: failed to update cache: %s", err)
	}
	return nil
}
