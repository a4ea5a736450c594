package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dontverifyme/internal/auth"
	"dontverifyme/internal/cache"

	"github.com/google/uuid"
)

type SessionToken struct {
	SessionId string `json:"sessionId"`
	Value     string `json:"value"`
}

type CreateSessionV1Opts struct {
	Db          *sql.DB
	CachePrefix string

	Email string

	IpAddress string
	UserAgent string
	Hostname  string
	Source    string
	ExpiresIn time.Duration
}

// CreateSessionV1 issues a session for an already-authenticated user.
// The session starts at aal1; its next level is aal2 when the user has
// at least one verified second factor
func CreateSessionV1(opts CreateSessionV1Opts) (*SessionToken, error) {
	userInstance, err := GetUserV1(GetUserV1Opts{
		Db:    opts.Db,
		Email: &opts.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("models.CreateSessionV1: failed to get user instance: %w", err)
	}
	if !userInstance.IsEmailVerified {
		return nil, fmt.Errorf("models.CreateSessionV1: %w", ErrorUserEmailNotVerified)
	}

	verifiedFactorCount, err := CountUserMfasV1(CountUserMfasV1Opts{
		Db:           opts.Db,
		UserId:       *userInstance.Id,
		VerifiedOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("models.CreateSessionV1: failed to count verified factors: %w", err)
	}
	nextLevel := AalSingleFactor
	if verifiedFactorCount > 0 {
		nextLevel = AalMultiFactor
	}

	sessionId := uuid.NewString()

	jwtToken, err := auth.GenerateJwt(auth.GenerateJwtOpts{
		Audience: opts.Source,
		Ext: map[string]string{
			"ip": opts.IpAddress,
			"ua": opts.UserAgent,
			"hn": opts.Hostname,
		},
		Id:       sessionId,
		Issuer:   "dontverifyme/controller",
		Secret:   sessionSigningToken,
		Subject:  opts.Source,
		Ttl:      opts.ExpiresIn,
		UserId:   *userInstance.Id,
		Username: userInstance.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("models.CreateSessionV1: failed to issue jwt: %s", err)
	}

	record, err := json.Marshal(sessionRecord{
		SessionId:    sessionId,
		CurrentLevel: AalSingleFactor,
		NextLevel:    nextLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("models.CreateSessionV1: failed to serialise session record: %s", err)
	}
	cacheKey := strings.Join([]string{opts.CachePrefix, *userInstance.Id, sessionId}, ":")
	if err := cache.Get().Set(cacheKey, string(record), opts.ExpiresIn); err != nil {
		return nil, fmt.Errorf("models.CreateSessionV1: failed to update cache: %s", err)
	}
	return &SessionToken{
		SessionId: sessionId,
		Value:     jwtToken,
	}, nil
}
