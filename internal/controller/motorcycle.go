package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"dontverifyme/internal/common"
	"dontverifyme/internal/controller/models"
	"dontverifyme/internal/validate"

	"github.com/gorilla/mux"
)

// The garage holds personal data so every route sits behind the mfa
// step-up gate, a user with a verified factor has to pass a challenge
// before these respond
func registerMotorcycleRoutes(opts RouteRegistrationOpts) {
	requiresAuth := getRouteAuther(opts.ServiceLogs)
	requiresMfa := getMfaStepUpGate(opts.ServiceLogs)
	protected := func(handler http.HandlerFunc) http.Handler {
		return requiresAuth(requiresMfa(handler))
	}

	v1 := opts.Router.PathPrefix("/v1/motorcycles").Subrouter()

	v1.Handle("", protected(handleListMotorcyclesV1)).Methods(http.MethodGet)
	v1.Handle("", protected(handleCreateMotorcycleV1)).Methods(http.MethodPost)

	v1 = opts.Router.PathPrefix("/v1/motorcycle").Subrouter()

	v1.Handle("/{motorcycleId}", protected(handleGetMotorcycleV1)).Methods(http.MethodGet)
	v1.Handle("/{motorcycleId}", protected(handleDeleteMotorcycleV1)).Methods(http.MethodDelete)
	v1.Handle("/{motorcycleId}/tires", protected(handleListTireSetsV1)).Methods(http.MethodGet)
	v1.Handle("/{motorcycleId}/tires", protected(handleCreateTireSetV1)).Methods(http.MethodPost)
	v1.Handle("/{motorcycleId}/tire/{tireSetId}", protected(handleRetireTireSetV1)).Methods(http.MethodPatch)
	v1.Handle("/{motorcycleId}/tire/{tireSetId}", protected(handleDeleteTireSetV1)).Methods(http.MethodDelete)
}

type handleCreateMotorcycleV1Input struct {
	Name  string  `json:"name"`
	Make  *string `json:"make"`
	Model *string `json:"model"`
	Year  *int    `json:"year"`
}

func handleCreateMotorcycleV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	session := r.Context().Value(userAuthRequestContext).(userIdentity)

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read request body", ErrorInvalidInput)
		return
	}
	var input handleCreateMotorcycleV1Input
	if err := json.Unmarshal(requestBody, &input); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("creating motorcycle for user[%s]", session.UserId))

	motorcycle, err := models.CreateMotorcycleV1(models.CreateMotorcycleV1Opts{
		Db: db,

		UserId: session.UserId,
		Name:   input.Name,
		Make:   input.Make,
		Model:  input.Model,
		Year:   input.Year,
	})
	if err != nil {
		if errors.Is(err, models.ErrorInvalidInput) {
			common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to create motorcycle", ErrorInvalidInput)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to create motorcycle", ErrorDatabaseIssue)
		return
	}

	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", motorcycle)
}

func handleListMotorcyclesV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	session := r.Context().Value(userAuthRequestContext).(userIdentity)
	log(common.LogLevelDebug, fmt.Sprintf("listing motorcycles of user[%s]", session.UserId))

	motorcycles, err := models.ListMotorcyclesV1(models.ListMotorcyclesV1Opts{
		Db:     db,
		UserId: session.UserId,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to list motorcycles", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", motorcycles)
}

func handleGetMotorcycleV1(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(userAuthRequestContext).(userIdentity)
	vars := mux.Vars(r)
	motorcycleId := vars["motorcycleId"]
	if err := validate.Uuid(motorcycleId); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid motorcycle id", ErrorInvalidInput)
		return
	}

	motorcycle, err := models.GetMotorcycleV1(models.GetMotorcycleV1Opts{
		Db: db,

		Id:     motorcycleId,
		UserId: session.UserId,
	})
	if err != nil {
		if errors.Is(err, models.ErrorNotFound) {
			common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find motorcycle", ErrorNotFound)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to get motorcycle", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", motorcycle)
}

func handleDeleteMotorcycleV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	session := r.Context().Value(userAuthRequestContext).(userIdentity)
	vars := mux.Vars(r)
	motorcycleId := vars["motorcycleId"]
	if err := validate.Uuid(motorcycleId); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid motorcycle id", ErrorInvalidInput)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("deleting motorcycle[%s] of user[%s]", motorcycleId, session.UserId))

	if err := models.DeleteMotorcycleV1(models.DeleteMotorcycleV1Opts{
		Db: db,

		Id:     motorcycleId,
		UserId: session.UserId,
	}); err != nil {
		if errors.Is(err, models.ErrorNotFound) {
			common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find motorcycle", ErrorNotFound)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to delete motorcycle", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
}

type handleCreateTireSetV1Input struct {
	Position         string     `json:"position"`
	Brand            string     `json:"brand"`
	Model            string     `json:"model"`
	InstalledAt      *time.Time `json:"installedAt"`
	InstalledMileage int        `json:"installedMileage"`
	ExpectedLifeKm   *int       `json:"expectedLifeKm"`
}

func handleCreateTireSetV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	session := r.Context().Value(userAuthRequestContext).(userIdentity)
	vars := mux.Vars(r)
	motorcycleId := vars["motorcycleId"]
	if err := validate.Uuid(motorcycleId); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid motorcycle id", ErrorInvalidInput)
		return
	}

	// Ownership check before any write
	if _, err := models.GetMotorcycleV1(models.GetMotorcycleV1Opts{
		Db: db,

		Id:     motorcycleId,
		UserId: session.UserId,
	}); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find motorcycle", ErrorNotFound)
		return
	}

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read request body", ErrorInvalidInput)
		return
	}
	var input handleCreateTireSetV1Input
	if err := json.Unmarshal(requestBody, &input); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("mounting %s tires on motorcycle[%s]", input.Position, motorcycleId))

	tireSet, err := models.CreateTireSetV1(models.CreateTireSetV1Opts{
		Db: db,

		MotorcycleId:     motorcycleId,
		Position:         input.Position,
		Brand:            input.Brand,
		Model:            input.Model,
		InstalledAt:      input.InstalledAt,
		InstalledMileage: input.InstalledMileage,
		ExpectedLifeKm:   input.ExpectedLifeKm,
	})
	if err != nil {
		if errors.Is(err, models.ErrorInvalidInput) {
			common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to create tire set", ErrorInvalidInput)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to create tire set", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", tireSet)
}

func handleListTireSetsV1(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(userAuthRequestContext).(userIdentity)
	vars := mux.Vars(r)
	motorcycleId := vars["motorcycleId"]
	if err := validate.Uuid(motorcycleId); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid motorcycle id", ErrorInvalidInput)
		return
	}

	if _, err := models.GetMotorcycleV1(models.GetMotorcycleV1Opts{
		Db: db,

		Id:     motorcycleId,
		UserId: session.UserId,
	}); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find motorcycle", ErrorNotFound)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	tireSets, err := models.ListTireSetsV1(models.ListTireSetsV1Opts{
		Db: db,

		MotorcycleId: motorcycleId,
		ActiveOnly:   activeOnly,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to list tire sets", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", tireSets)
}

func handleRetireTireSetV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	session := r.Context().Value(userAuthRequestContext).(userIdentity)
	vars := mux.Vars(r)
	motorcycleId := vars["motorcycleId"]
	tireSetId := vars["tireSetId"]
	if err := validate.Uuid(motorcycleId); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid motorcycle id", ErrorInvalidInput)
		return
	}
	if err := validate.Uuid(tireSetId); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid tire set id", ErrorInvalidInput)
		return
	}

	if _, err := models.GetMotorcycleV1(models.GetMotorcycleV1Opts{
		Db: db,

		Id:     motorcycleId,
		UserId: session.UserId,
	}); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find motorcycle", ErrorNotFound)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("retiring tire set[%s] on motorcycle[%s]", tireSetId, motorcycleId))

	if err := models.RetireTireSetV1(models.RetireTireSetV1Opts{
		Db: db,
		Id: tireSetId,
	}); err != nil {
		if errors.Is(err, models.ErrorNotFound) {
			common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find tire set", ErrorNotFound)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to retire tire set", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
}

func handleDeleteTireSetV1(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(userAuthRequestContext).(userIdentity)
	vars := mux.Vars(r)
	motorcycleId := vars["motorcycleId"]
	tireSetId := vars["tireSetId"]
	if err := validate.Uuid(motorcycleId); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid motorcycle id", ErrorInvalidInput)
		return
	}
	if err := validate.Uuid(tireSetId); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid tire set id", ErrorInvalidInput)
		return
	}

	if _, err := models.GetMotorcycleV1(models.GetMotorcycleV1Opts{
		Db: db,

		Id:     motorcycleId,
		UserId: session.UserId,
	}); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find motorcycle", ErrorNotFound)
		return
	}

	if err := models.DeleteTireSetV1(models.DeleteTireSetV1Opts{
		Db: db,
		Id: tireSetId,
	}); err != nil {
		if errors.Is(err, models.ErrorNotFound) {
			common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find tire set", ErrorNotFound)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to delete tire set", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
}
