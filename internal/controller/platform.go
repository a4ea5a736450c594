package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"dontverifyme/internal/common"
	"dontverifyme/internal/controller/models"
	"dontverifyme/internal/storage"
	"dontverifyme/internal/validate"

	"github.com/gorilla/mux"
)

// Platform reads are public since the privacy guides are the marketing
// surface; mutations are internal-only and sit behind the api key
func registerPlatformRoutes(opts RouteRegistrationOpts) {
	requiresInternalAuth := getInternalRouteAuther(opts.ApiKeys, opts.ServiceLogs)

	v1 := opts.Router.PathPrefix("/v1/platforms").Subrouter()

	v1.HandleFunc("", handleListPlatformsV1).Methods(http.MethodGet)
	v1.Handle("", requiresInternalAuth(http.HandlerFunc(handleCreatePlatformV1))).Methods(http.MethodPost)

	v1 = opts.Router.PathPrefix("/v1/platform").Subrouter()

	v1.HandleFunc("/{slug}", handleGetPlatformV1).Methods(http.MethodGet)
	v1.HandleFunc("/{slug}/icon", handleGetPlatformIconV1).Methods(http.MethodGet)
	v1.Handle("/{slug}", requiresInternalAuth(http.HandlerFunc(handleUpdatePlatformV1))).Methods(http.MethodPatch)
	v1.Handle("/{slug}", requiresInternalAuth(http.HandlerFunc(handleDeletePlatformV1))).Methods(http.MethodDelete)
	v1.Handle("/{slug}/icon", requiresInternalAuth(http.HandlerFunc(handleUploadPlatformIconV1))).Methods(http.MethodPut)
}

type handleCreatePlatformV1Input struct {
	Name        string  `json:"name"`
	Url         *string `json:"url"`
	Description *string `json:"description"`
}

func handleCreatePlatformV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read request body", ErrorInvalidInput)
		return
	}
	var input handleCreatePlatformV1Input
	if err := json.Unmarshal(requestBody, &input); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("creating platform[%s]", input.Name))

	platform, err := models.CreatePlatformV1(models.CreatePlatformV1Opts{
		Db: db,

		Name:        input.Name,
		Url:         input.Url,
		Description: input.Description,
	})
	if err != nil {
		if errors.Is(err, models.ErrorDuplicateEntry) {
			common.SendHttpFailResponse(w, r, http.StatusConflict, "failed to create platform, slug already exists", ErrorInvalidInput)
			return
		}
		if errors.Is(err, models.ErrorInvalidInput) {
			common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to create platform", ErrorInvalidInput)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to create platform", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", platform)
}

func handleListPlatformsV1(w http.ResponseWriter, r *http.Request) {
	// Anonymous visitors only see published platforms; internal callers
	// get the full directory
	platforms, err := models.ListPlatformsV1(models.ListPlatformsV1Opts{
		Db: db,

		PublishedOnly: !isInternalRequest(r),
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to list platforms", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", platforms)
}

func handleGetPlatformV1(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]
	if err := validate.Slug(slug); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid slug", ErrorInvalidInput)
		return
	}

	platform, err := models.GetPlatformV1(models.GetPlatformV1Opts{
		Db:   db,
		Slug: &slug,

		PublishedOnly: !isInternalRequest(r),
	})
	if err != nil {
		if errors.Is(err, models.ErrorNotFound) {
			common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find platform", ErrorNotFound)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to get platform", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", platform)
}

type handleUpdatePlatformV1Input struct {
	Name         *string `json:"name"`
	Url          *string `json:"url"`
	Description  *string `json:"description"`
	IsPublished  *bool   `json:"isPublished"`
	DisplayOrder *int    `json:"displayOrder"`
}

func handleUpdatePlatformV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	vars := mux.Vars(r)
	slug := vars["slug"]
	if err := validate.Slug(slug); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid slug", ErrorInvalidInput)
		return
	}

	platform, err := models.GetPlatformV1(models.GetPlatformV1Opts{
		Db:   db,
		Slug: &slug,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find platform", ErrorNotFound)
		return
	}

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read request body", ErrorInvalidInput)
		return
	}
	var input handleUpdatePlatformV1Input
	if err := json.Unmarshal(requestBody, &input); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("updating platform[%s]", platform.Id))

	if err := models.UpdatePlatformV1(models.UpdatePlatformV1Opts{
		Db: db,

		Id:           platform.Id,
		Name:         input.Name,
		Url:          input.Url,
		Description:  input.Description,
		IsPublished:  input.IsPublished,
		DisplayOrder: input.DisplayOrder,
	}); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to update platform", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
}

func handleDeletePlatformV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	vars := mux.Vars(r)
	slug := vars["slug"]
	if err := validate.Slug(slug); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid slug", ErrorInvalidInput)
		return
	}

	platform, err := models.GetPlatformV1(models.GetPlatformV1Opts{
		Db:   db,
		Slug: &slug,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find platform", ErrorNotFound)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("deleting platform[%s]", platform.Id))

	if err := models.DeletePlatformV1(models.DeletePlatformV1Opts{
		Db: db,
		Id: platform.Id,
	}); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to delete platform", ErrorDatabaseIssue)
		return
	}
	if platform.IconFilename != nil {
		if err := iconStore.DeleteIcon(*platform.IconFilename); err != nil {
			log(common.LogLevelWarn, fmt.Sprintf("failed to remove icon[%s]: %s", *platform.IconFilename, err))
		}
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
}

type handleUploadPlatformIconV1Output struct {
	Filename string `json:"filename"`
}

func handleUploadPlatformIconV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	vars := mux.Vars(r)
	slug := vars["slug"]
	if err := validate.Slug(slug); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid slug", ErrorInvalidInput)
		return
	}

	platform, err := models.GetPlatformV1(models.GetPlatformV1Opts{
		Db:   db,
		Slug: &slug,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find platform", ErrorNotFound)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, storage.MaxIconSizeBytes+1))
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read icon data", ErrorInvalidInput)
		return
	}

	previousFilename := ""
	if platform.IconFilename != nil {
		previousFilename = *platform.IconFilename
	}
	filename, err := iconStore.SaveIcon(storage.SaveIconOpts{
		Slug:             slug,
		ContentType:      r.Header.Get("Content-Type"),
		Data:             data,
		PreviousFilename: previousFilename,
	})
	if err != nil {
		if errors.Is(err, storage.ErrorIconTooLarge) {
			common.SendHttpFailResponse(w, r, http.StatusRequestEntityTooLarge, "failed to store icon, it is too large", ErrorInvalidInput)
			return
		}
		if errors.Is(err, storage.ErrorIconTypeNotAllowed) {
			common.SendHttpFailResponse(w, r, http.StatusUnsupportedMediaType, "failed to store icon, type is not allowed", ErrorInvalidInput)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to store icon", ErrorGeneric)
		return
	}

	if err := models.UpdatePlatformIconV1(models.UpdatePlatformIconV1Opts{
		Db: db,

		Id:           platform.Id,
		IconFilename: filename,
	}); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to associate icon", ErrorDatabaseIssue)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("stored icon[%s] for platform[%s]", filename, platform.Id))

	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", handleUploadPlatformIconV1Output{
		Filename: filename,
	})
}

func handleGetPlatformIconV1(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]
	if err := validate.Slug(slug); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid slug", ErrorInvalidInput)
		return
	}

	platform, err := models.GetPlatformV1(models.GetPlatformV1Opts{
		Db:   db,
		Slug: &slug,
	})
	if err != nil || platform.IconFilename == nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find an icon", ErrorNotFound)
		return
	}

	data, contentType, err := iconStore.GetIcon(*platform.IconFilename)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find an icon", ErrorNotFound)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
