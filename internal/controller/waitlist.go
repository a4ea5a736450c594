package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"dontverifyme/internal/common"
	"dontverifyme/internal/controller/models"
	"dontverifyme/internal/validate"
)

func registerWaitlistRoutes(opts RouteRegistrationOpts) {
	requiresInternalAuth := getInternalRouteAuther(opts.ApiKeys, opts.ServiceLogs)

	v1 := opts.Router.PathPrefix("/v1/waitlist").Subrouter()

	v1.HandleFunc("", handleJoinWaitlistV1).Methods(http.MethodPost)
	v1.Handle("", requiresInternalAuth(http.HandlerFunc(handleListWaitlistV1))).Methods(http.MethodGet)
}

type handleJoinWaitlistV1Input struct {
	Email string `json:"email"`
}

type handleJoinWaitlistV1Output struct {
	Email string `json:"email"`
}

func handleJoinWaitlistV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read request body", ErrorInvalidInput)
		return
	}
	var input handleJoinWaitlistV1Input
	if err := json.Unmarshal(requestBody, &input); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
		return
	}
	if err := validate.Email(input.Email); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "invalid email address", err)
		return
	}

	if _, err := models.CreateWaitlistEntryV1(models.CreateWaitlistEntryV1Opts{
		Db:    db,
		Email: input.Email,
	}); err != nil {
		if errors.Is(err, models.ErrorDuplicateEntry) {
			// A repeat signup is reported as a success so the endpoint
			// cannot be used to probe which emails have signed up
			log(common.LogLevelDebug, fmt.Sprintf("email[%s] is already on the waitlist", input.Email))
			common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", handleJoinWaitlistV1Output{
				Email: input.Email,
			})
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to join waitlist", ErrorDatabaseIssue)
		return
	}

	if err := queueEmail(emailJob{
		To:       input.Email,
		Title:    "You're on the list",
		Template: emailTemplateWelcome,
	}); err != nil {
		log(common.LogLevelWarn, fmt.Sprintf("failed to queue welcome email for user[%s]: %s", input.Email, err))
	}

	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", handleJoinWaitlistV1Output{
		Email: input.Email,
	})
}

func handleListWaitlistV1(w http.ResponseWriter, r *http.Request) {
	entries, err := models.ListWaitlistEntriesV1(models.ListWaitlistEntriesV1Opts{
		Db: db,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to list waitlist entries", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", entries)
}
