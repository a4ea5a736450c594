package models

import "time"

const (
	// AalSingleFactor is the assurance level of a session backed by
	// password credentials only
	AalSingleFactor = "aal1"

	// AalMultiFactor is the assurance level of a session that has also
	// passed a second-factor challenge
	AalMultiFactor = "aal2"
)

var sessionSigningToken string

// InitSessionSigning sets the secret used to sign and validate session
// tokens, it has to be called once before sessions are issued
func InitSessionSigning(secret string) {
	sessionSigningToken = secret
}

type Session struct {
	Id           string    `json:"id"`
	ExpiresAt    time.Time `json:"expiresAt"`
	StartedAt    time.Time `json:"startedAt"`
	TimeLeft     string    `json:"timeLeft"`
	UserId       string    `json:"userId"`
	Username     string    `json:"username"`
	CurrentLevel string    `json:"currentLevel"`
	NextLevel    string    `json:"nextLevel"`
}

// sessionRecord is the JSON value stored in the cache, keyed by
// prefix:userId:sessionId
type sessionRecord struct {
	SessionId    string `json:"sessionId"`
	CurrentLevel string `json:"currentLevel"`
	NextLevel    string `json:"nextLevel"`
}
