package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"dontverifyme/internal/auth"
	"dontverifyme/internal/common"
	"dontverifyme/internal/controller/models"
	"dontverifyme/internal/validate"
)

func registerMfaRoutes(opts RouteRegistrationOpts) {
	requiresAuth := getRouteAuther(opts.ServiceLogs)

	v1 := opts.Router.PathPrefix("/v1/mfa").Subrouter()

	v1.Handle("/challenge", requiresAuth(http.HandlerFunc(handleCreateMfaChallengeV1))).Methods(http.MethodPost)
	v1.Handle("/verify", requiresAuth(http.HandlerFunc(handleVerifyMfaChallengeV1))).Methods(http.MethodPost)
	v1.Handle("/aal", requiresAuth(http.HandlerFunc(handleGetAalV1))).Methods(http.MethodGet)
}

type handleCreateMfaChallengeV1Input struct {
	// FactorId when set selects the factor to challenge; when empty the
	// first verified factor is used
	FactorId *string `json:"factorId"`
}

type handleCreateMfaChallengeV1Output struct {
	ChallengeId string `json:"challengeId"`
	FactorId    string `json:"factorId"`
	FactorType  string `json:"factorType"`
	ExpiresAt   string `json:"expiresAt"`
}

func handleCreateMfaChallengeV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	session := r.Context().Value(userAuthRequestContext).(userIdentity)

	var input handleCreateMfaChallengeV1Input
	requestBody, err := io.ReadAll(r.Body)
	if err == nil && len(requestBody) > 0 {
		if err := json.Unmarshal(requestBody, &input); err != nil {
			common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
			return
		}
	}

	factors, err := models.ListUserMfasV1(models.ListUserMfasV1Opts{
		Db:           db,
		UserId:       &session.UserId,
		VerifiedOnly: true,
	})
	if err != nil {
		log(common.LogLevelError, fmt.Sprintf("failed to list user[%s] factors: %s", session.UserId, err))
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to list factors", ErrorDatabaseIssue)
		return
	}
	if len(factors) == 0 {
		common.SendHttpFailResponse(w, r, http.StatusConflict, "failed to find a verified factor", ErrorNoFactorsEnrolled)
		return
	}

	factor := factors[0]
	if input.FactorId != nil {
		isFound := false
		for _, candidate := range factors {
			if candidate.Id == *input.FactorId {
				factor = candidate
				isFound = true
				break
			}
		}
		if !isFound {
			common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find the requested factor", ErrorNotFound)
			return
		}
	}

	challenge, err := models.CreateMfaChallengeV1(models.CreateMfaChallengeV1Opts{
		CachePrefix: mfaChallengeCachePrefix,

		FactorId: factor.Id,
		UserId:   session.UserId,
	})
	if err != nil {
		log(common.LogLevelError, fmt.Sprintf("failed to create challenge for user[%s]: %s", session.UserId, err))
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to create challenge", ErrorGeneric)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("created challenge[%s] on factor[%s] for user[%s]", challenge.Id, factor.Id, session.UserId))

	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", handleCreateMfaChallengeV1Output{
		ChallengeId: challenge.Id,
		FactorId:    factor.Id,
		FactorType:  factor.Type,
		ExpiresAt:   challenge.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

type handleVerifyMfaChallengeV1Input struct {
	ChallengeId string `json:"challengeId"`
	Value       string `json:"value"`
}

type handleVerifyMfaChallengeV1Output struct {
	CurrentLevel string `json:"currentLevel"`
	NextLevel    string `json:"nextLevel"`
}

func handleVerifyMfaChallengeV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	session := r.Context().Value(userAuthRequestContext).(userIdentity)

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read request body", ErrorInvalidInput)
		return
	}
	var input handleVerifyMfaChallengeV1Input
	if err := json.Unmarshal(requestBody, &input); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
		return
	}
	if err := validate.Uuid(input.ChallengeId); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid challenge id", ErrorInvalidInput)
		return
	}
	if err := validate.TotpToken(input.Value); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid token", ErrorInvalidInput)
		return
	}

	challenge, err := models.ConsumeMfaChallengeV1(models.ConsumeMfaChallengeV1Opts{
		CachePrefix: mfaChallengeCachePrefix,
		ChallengeId: input.ChallengeId,
	})
	if err != nil {
		log(common.LogLevelWarn, fmt.Sprintf("failed to consume challenge[%s]: %s", input.ChallengeId, err))
		common.SendHttpFailResponse(w, r, http.StatusGone, "failed to consume challenge", ErrorChallengeExpired)
		return
	}
	if challenge.UserId != session.UserId {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find challenge", ErrorNotFound)
		return
	}

	factor, err := models.GetUserMfaV1(models.GetUserMfaV1Opts{
		Db: db,
		Id: challenge.FactorId,
	})
	if err != nil {
		if errors.Is(err, models.ErrorNotFound) {
			common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find factor", ErrorNotFound)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to get factor", ErrorDatabaseIssue)
		return
	}

	isValid, err := auth.ValidateTotpToken(*factor.Secret, input.Value)
	if err != nil || !isValid {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to verify token", ErrorMfaTokenInvalid)
		return
	}

	sessionInfo := models.Session{
		Id:        session.SessionId,
		UserId:    session.UserId,
		ExpiresAt: session.ExpiresAt,
	}
	if err := models.AdvanceSessionAalV1(models.AdvanceSessionAalV1Opts{
		CachePrefix: sessionCachePrefix,
		Session:     &sessionInfo,
	}); err != nil {
		log(common.LogLevelError, fmt.Sprintf("failed to advance session[%s]: %s", session.SessionId, err))
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to advance session", ErrorGeneric)
		return
	}
	log(common.LogLevelInfo, fmt.Sprintf("session[%s] of user[%s] advanced to %s", session.SessionId, session.UserId, models.AalMultiFactor))

	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", handleVerifyMfaChallengeV1Output{
		CurrentLevel: models.AalMultiFactor,
		NextLevel:    models.AalMultiFactor,
	})
}

type handleGetAalV1Output struct {
	CurrentLevel string `json:"currentLevel"`
	NextLevel    string `json:"nextLevel"`
}

func handleGetAalV1(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(userAuthRequestContext).(userIdentity)
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", handleGetAalV1Output{
		CurrentLevel: session.CurrentLevel,
		NextLevel:    session.NextLevel,
	})
}
