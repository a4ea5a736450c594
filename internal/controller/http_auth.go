package controller

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dontverifyme/internal/common"
	"dontverifyme/internal/controller/models"
)

const userAuthRequestContext common.HttpContextKey = "controller-auth"
const internalAuthRequestContext common.HttpContextKey = "internal-auth"

type apiIdentity struct {
	// Status is the status of the API key
	Status string `json:"status"`

	// Value is the API key
	Value string `json:"value"`
}

type userIdentity struct {
	// SourceIp is the IP address that the request came from
	SourceIp string `json:"sourceIp"`

	// UserAgent is the user agent of the request
	UserAgent string `json:"userAgent"`

	// UserId is the ID of the current caller
	UserId string `json:"userId"`

	// Username is the email of the current caller
	Username string `json:"username"`

	// SessionId is the ID of the session the caller is on
	SessionId string `json:"sessionId"`

	// CurrentLevel is the authenticator assurance level the session
	// has reached
	CurrentLevel string `json:"currentLevel"`

	// NextLevel is the assurance level the session can reach given the
	// factors the caller has verified
	NextLevel string `json:"nextLevel"`

	// ExpiresAt is when the session expires
	ExpiresAt time.Time `json:"expiresAt"`
}

func getRouteAuther(serviceLogs chan<- common.ServiceLog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
			serviceLogs <- common.ServiceLogf(common.LogLevelTrace, "auth middleware is executing")
			authorizationHeader := r.Header.Get("Authorization")
			if strings.Index(authorizationHeader, "Bearer ") != 0 {
				common.SendHttpFailResponse(w, r, http.StatusUnauthorized, "failed to receive an authorization header", ErrorAuthRequired)
				return
			}
			authorizationToken := strings.ReplaceAll(authorizationHeader, "Bearer ", "")
			sessionInfo, err := models.GetSessionV1(models.GetSessionV1Opts{
				BearerToken: authorizationToken,
				CachePrefix: sessionCachePrefix,
			})
			if err != nil {
				common.SendHttpFailResponse(w, r, http.StatusUnauthorized, "failed to retrieve session", ErrorAuthRequired)
				return
			}
			log(common.LogLevelInfo, fmt.Sprintf("processing request from user[%s]", sessionInfo.UserId))
			identityInstance := userIdentity{
				SourceIp:     r.RemoteAddr,
				UserId:       sessionInfo.UserId,
				Username:     sessionInfo.Username,
				UserAgent:    r.UserAgent(),
				SessionId:    sessionInfo.Id,
				CurrentLevel: sessionInfo.CurrentLevel,
				NextLevel:    sessionInfo.NextLevel,
				ExpiresAt:    sessionInfo.ExpiresAt,
			}
			authContext := context.WithValue(r.Context(), userAuthRequestContext, identityInstance)
			next.ServeHTTP(w, r.WithContext(authContext))
		})
	}
}

// mfaRedirectPath is where clients should send users who still need to
// pass a second-factor challenge
const mfaRedirectPath = "/mfa-verify"

// getMfaStepUpGate returns a middleware that rejects sessions which can
// reach aal2 but have not yet passed a second-factor challenge. It has
// to run after getRouteAuther since it reads the caller identity from
// the request context
func getMfaStepUpGate(serviceLogs chan<- common.ServiceLog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
			serviceLogs <- common.ServiceLogf(common.LogLevelTrace, "mfa step-up middleware is executing")
			session, ok := r.Context().Value(userAuthRequestContext).(userIdentity)
			if !ok {
				common.SendHttpFailResponse(w, r, http.StatusUnauthorized, "failed to retrieve caller identity", ErrorAuthRequired)
				return
			}
			if session.NextLevel == models.AalMultiFactor && session.CurrentLevel != models.AalMultiFactor {
				log(common.LogLevelInfo, fmt.Sprintf("user[%s] requires mfa step-up for path[%s]", session.UserId, r.URL.Path))
				w.Header().Set("x-mfa-redirect", mfaRedirectPath)
				common.SendHttpFailResponse(w, r, http.StatusForbidden, "failed to meet the required assurance level", ErrorMfaRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func getInternalRouteAuther(apiKeys []string, serviceLogs chan<- common.ServiceLog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
			serviceLogs <- common.ServiceLogf(common.LogLevelTrace, "internal auth middleware is executing")
			apiKey := r.Header.Get("x-api-key")

			var apiKeyIndex int
			var apiKeysCount = len(apiKeys)
			for apiKeyIndex = 0; apiKeyIndex < apiKeysCount; apiKeyIndex++ {
				if apiKeys[apiKeyIndex] == apiKey {
					break
				}
			}
			if apiKeyIndex == apiKeysCount {
				log(common.LogLevelWarn, fmt.Sprintf("api key validation failed with key '%s'", apiKey))
				common.SendHttpFailResponse(w, r, http.StatusForbidden, "failed to receive a valid api key", ErrorAuthRequired)
				return
			}
			apiIdentityInstance := apiIdentity{
				Status: "ok",
				Value:  apiKeys[apiKeyIndex],
			}
			if apiKeyIndex != 0 {
				apiIdentityInstance.Status = "deprecated"
			}
			w.Header().Set("x-api-key-status", apiIdentityInstance.Status)
			authContext := context.WithValue(r.Context(), internalAuthRequestContext, apiIdentityInstance)
			next.ServeHTTP(w, r.WithContext(authContext))
		})
	}
}

// isInternalRequest reports whether the request carries a known api
// key, used by public endpoints that include drafts for internal
// callers
func isInternalRequest(r *http.Request) bool {
	apiKey := r.Header.Get("x-api-key")
	if apiKey == "" {
		return false
	}
	for _, key := range apiKeys {
		if key == apiKey {
			return true
		}
	}
	return false
}
