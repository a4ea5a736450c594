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

	"github.com/gorilla/mux"
)

const totpIssuer = "dontverifyme"

func registerUserRoutes(opts RouteRegistrationOpts) {
	requiresAuth := getRouteAuther(opts.ServiceLogs)

	v1 := opts.Router.PathPrefix("/v1/users").Subrouter()

	v1.HandleFunc("", handleCreateUserV1).Methods(http.MethodPost)

	v1 = opts.Router.PathPrefix("/v1/user").Subrouter()

	v1.Handle("/mfa", requiresAuth(http.HandlerFunc(handleCreateUserMfaV1))).Methods(http.MethodPost)
	v1.Handle("/mfa/{mfaId}", requiresAuth(http.HandlerFunc(handleVerifyUserMfaV1))).Methods(http.MethodPost)
	v1.Handle("/mfa/{mfaId}", requiresAuth(http.HandlerFunc(handleDeleteUserMfaV1))).Methods(http.MethodDelete)
	v1.Handle("/mfas", requiresAuth(http.HandlerFunc(handleListUserMfasV1))).Methods(http.MethodGet)
	v1.HandleFunc("/mfas", handleListUserMfaTypesV1).Methods(http.MethodOptions)

	v1 = opts.Router.PathPrefix("/v1/verification").Subrouter()

	v1.HandleFunc("/{verificationCode}", handleVerifyUserV1).Methods(http.MethodGet)
}

type handleCreateUserV1Input struct {
	// Email is the user's email address
	Email string `json:"email"`

	// Password is the user's password
	Password string `json:"password"`
}

type handleCreateUserV1Output struct {
	Email string `json:"email"`
}

func handleCreateUserV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	log(common.LogLevelDebug, "this creates a new user")

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read request body", err)
		return
	}
	var requestData handleCreateUserV1Input
	if err := json.Unmarshal(requestBody, &requestData); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", err)
		return
	}

	log(common.LogLevelDebug, fmt.Sprintf("processing request to create user[%s]", requestData.Email))

	if err := validate.Email(requestData.Email); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "invalid email address", err)
		return
	}
	if err := validate.Password(requestData.Password); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "invalid password", err)
		return
	}

	verificationCode, err := models.CreateUserV1(models.CreateUserV1Opts{
		Db: db,

		Email:    requestData.Email,
		Password: requestData.Password,
	})
	if err != nil {
		if errors.Is(err, models.ErrorDuplicateEntry) {
			common.SendHttpFailResponse(w, r, http.StatusConflict, "failed to create user, email already exists", ErrorEmailExists)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to create user for unexpected reasons", err)
		return
	}

	if err := queueEmail(emailJob{
		To:       requestData.Email,
		Title:    "Verify your email to get started",
		Template: emailTemplateVerification,
		Variables: map[string]string{
			"verificationCode": verificationCode,
			"remoteAddr":       r.RemoteAddr,
			"userAgent":        r.UserAgent(),
		},
	}); err != nil {
		log(common.LogLevelWarn, fmt.Sprintf("failed to queue verification email, send user their verification code[%s] manually: %s", verificationCode, err))
	}

	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", handleCreateUserV1Output{
		Email: requestData.Email,
	})
}

func handleVerifyUserV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	vars := mux.Vars(r)
	verificationCode := vars["verificationCode"]
	if verificationCode == "" {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a verification code", ErrorInvalidInput)
		return
	}

	if err := models.VerifyUserEmailV1(models.VerifyUserEmailV1Opts{
		Db:               db,
		VerificationCode: verificationCode,
	}); err != nil {
		log(common.LogLevelWarn, fmt.Sprintf("failed to verify email: %s", err))
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to verify email", ErrorInvalidInput)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
}

type handleCreateUserMfaV1Input struct {
	MfaType string  `json:"mfaType"`
	Name    *string `json:"name"`
}

type handleCreateUserMfaV1Output struct {
	Id     string  `json:"id"`
	Type   string  `json:"type"`
	Name   *string `json:"name"`
	Secret string  `json:"secret"`
	Uri    string  `json:"uri"`
	QrCode string  `json:"qrCode"`
}

func handleCreateUserMfaV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	session := r.Context().Value(userAuthRequestContext).(userIdentity)

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read request body", ErrorInvalidInput)
		return
	}
	var input handleCreateUserMfaV1Input
	if err := json.Unmarshal(requestBody, &input); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("creating mfa of type[%s] for user[%s]", input.MfaType, session.UserId))

	switch input.MfaType {
	case models.MfaTypeTotp:
		userMfa, err := models.CreateUserMfaV1(models.CreateUserMfaV1Opts{
			Db: db,

			Issuer: totpIssuer,
			Name:   input.Name,
			Type:   models.MfaTypeTotp,
			UserId: session.UserId,
		})
		if err != nil {
			if errors.Is(err, models.ErrorMfaLimitReached) {
				common.SendHttpFailResponse(w, r, http.StatusConflict, "failed to create user totp mfa", ErrorMfaLimitReached)
				return
			}
			common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to create user totp mfa", ErrorDatabaseIssue)
			return
		}
		uriOpts := auth.GetTotpUriOpts{
			Issuer:    totpIssuer,
			AccountId: session.Username,
			Secret:    *userMfa.Secret,
		}
		qrCode, err := auth.GetTotpQrCode(uriOpts)
		if err != nil {
			log(common.LogLevelWarn, fmt.Sprintf("failed to render qr code for mfa[%s]: %s", userMfa.Id, err))
		}
		common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", handleCreateUserMfaV1Output{
			Id:     userMfa.Id,
			Type:   userMfa.Type,
			Name:   userMfa.Name,
			Secret: *userMfa.Secret,
			Uri:    auth.GetTotpUri(uriOpts),
			QrCode: qrCode,
		})
	default:
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to recognise type of mfa", ErrorUnrecognisedMfaType)
	}
}

type handleVerifyUserMfaV1Input struct {
	Value string `json:"value"`
}

type handleVerifyUserMfaV1Output struct {
	Id     string `json:"id"`
	Type   string `json:"type"`
	UserId string `json:"userId"`
}

func handleVerifyUserMfaV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	session := r.Context().Value(userAuthRequestContext).(userIdentity)
	vars := mux.Vars(r)
	mfaId := vars["mfaId"]

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read request body", ErrorInvalidInput)
		return
	}
	var input handleVerifyUserMfaV1Input
	if err := json.Unmarshal(requestBody, &input); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
		return
	}
	if err := validate.TotpToken(input.Value); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid token", ErrorInvalidInput)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("verifying mfa[%s] for user[%s]", mfaId, session.UserId))

	userMfa, err := models.GetUserMfaV1(models.GetUserMfaV1Opts{
		Db: db,
		Id: mfaId,
	})
	if err != nil {
		log(common.LogLevelError, fmt.Sprintf("failed to get mfa[%s] for user[%s]: %s", mfaId, session.UserId, err))
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to get user mfa", ErrorDatabaseIssue)
		return
	}
	if userMfa.UserId != session.UserId {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to get user mfa", ErrorNotFound)
		return
	}

	switch userMfa.Type {
	case models.MfaTypeTotp:
		isValid, err := auth.ValidateTotpToken(*userMfa.Secret, input.Value)
		if err != nil || !isValid {
			common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to verify token", ErrorMfaTokenInvalid)
			return
		}
		if err := models.VerifyUserMfaV1(models.VerifyUserMfaV1Opts{
			Db:     db,
			Id:     mfaId,
			UserId: session.UserId,
		}); err != nil {
			common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to verify mfa", ErrorDatabaseIssue)
			return
		}
		refreshSessionAal(log, session)
		common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", handleVerifyUserMfaV1Output{
			Id:     userMfa.Id,
			Type:   userMfa.Type,
			UserId: userMfa.UserId,
		})
	default:
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to recognise type of mfa", ErrorUnrecognisedMfaType)
	}
}

// refreshSessionAal recomputes the caller's reachable assurance level
// after their verified factor set changed. Failures are logged rather
// than surfaced since the factor mutation itself already succeeded
func refreshSessionAal(log common.HttpRequestLogger, session userIdentity) {
	verifiedCount, err := models.CountUserMfasV1(models.CountUserMfasV1Opts{
		Db:           db,
		UserId:       session.UserId,
		VerifiedOnly: true,
	})
	if err != nil {
		log(common.LogLevelWarn, fmt.Sprintf("failed to count verified factors of user[%s]: %s", session.UserId, err))
		return
	}
	if err := models.RefreshSessionAalV1(models.RefreshSessionAalV1Opts{
		CachePrefix: sessionCachePrefix,
		Session: &models.Session{
			Id:           session.SessionId,
			UserId:       session.UserId,
			ExpiresAt:    session.ExpiresAt,
			CurrentLevel: session.CurrentLevel,
		},
		VerifiedFactorCount: verifiedCount,
	}); err != nil {
		log(common.LogLevelWarn, fmt.Sprintf("failed to refresh assurance level of session[%s]: %s", session.SessionId, err))
	}
}

type handleDeleteUserMfaV1Output struct {
	Id           string `json:"id"`
	IsSuccessful bool   `json:"isSuccessful"`
}

// needsStepUpForDeletion reports whether removing the given factor
// demands a stepped-up session. Unverified factors are deletable at
// any level so an aal1 session with a pending step-up can still clean
// up its own abandoned enrollments
func needsStepUpForDeletion(session userIdentity, factor *models.UserMfa) bool {
	return factor.IsVerified &&
		session.NextLevel == models.AalMultiFactor &&
		session.CurrentLevel != models.AalMultiFactor
}

// handleDeleteUserMfaV1 removes one of the caller's factors. Removing
// a verified factor weakens the account so it demands a stepped-up
// session; unverified leftovers can be cleaned up at any level since a
// pending step-up would otherwise make them impossible to remove
func handleDeleteUserMfaV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	session := r.Context().Value(userAuthRequestContext).(userIdentity)
	vars := mux.Vars(r)
	mfaId := vars["mfaId"]

	if err := validate.Uuid(mfaId); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid mfa id", ErrorInvalidInput)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("deleting mfa[%s] of user[%s]", mfaId, session.UserId))

	userMfa, err := models.GetUserMfaV1(models.GetUserMfaV1Opts{
		Db: db,
		Id: mfaId,
	})
	if err != nil {
		if errors.Is(err, models.ErrorNotFound) {
			common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find mfa", ErrorNotFound)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to get user mfa", ErrorDatabaseIssue)
		return
	}
	if userMfa.UserId != session.UserId {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find mfa", ErrorNotFound)
		return
	}
	if needsStepUpForDeletion(session, userMfa) {
		log(common.LogLevelInfo, fmt.Sprintf("user[%s] requires mfa step-up to delete verified mfa[%s]", session.UserId, mfaId))
		w.Header().Set("x-mfa-redirect", mfaRedirectPath)
		common.SendHttpFailResponse(w, r, http.StatusForbidden, "failed to meet the required assurance level", ErrorMfaRequired)
		return
	}

	if err := models.DeleteUserMfaV1(models.DeleteUserMfaV1Opts{
		Db: db,

		Id:     mfaId,
		UserId: session.UserId,
	}); err != nil {
		if errors.Is(err, models.ErrorNotFound) {
			common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find mfa", ErrorNotFound)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to delete mfa", ErrorDatabaseIssue)
		return
	}
	refreshSessionAal(log, session)

	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", handleDeleteUserMfaV1Output{
		Id:           mfaId,
		IsSuccessful: true,
	})
}

func handleListUserMfasV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	session := r.Context().Value(userAuthRequestContext).(userIdentity)
	log(common.LogLevelDebug, fmt.Sprintf("retrieving user[%s]'s available mfas", session.UserId))

	userMfas, err := models.ListUserMfasV1(models.ListUserMfasV1Opts{
		Db:     db,
		UserId: &session.UserId,
	})
	if err != nil {
		log(common.LogLevelError, fmt.Sprintf("failed to list user[%s] mfas: %s", session.UserId, err))
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to list user mfas", err)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", userMfas.GetRedacted())
}

type handleListUserMfaTypesV1Response []handleListUserMfaTypesV1ResponseType

type handleListUserMfaTypesV1ResponseType struct {
	Description string `json:"description"`
	Value       string `json:"value"`
}

func handleListUserMfaTypesV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	log(common.LogLevelDebug, "list of all available user mfa types requested")

	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", handleListUserMfaTypesV1Response{
		{
			Description: "Time-based one-time passwords from an authenticator app",
			Value:       models.MfaTypeTotp,
		},
	})
}
