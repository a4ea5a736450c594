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

	"github.com/gorilla/mux"
)

// Published articles are public; drafts and all mutations are
// internal-only
func registerArticleRoutes(opts RouteRegistrationOpts) {
	requiresInternalAuth := getInternalRouteAuther(opts.ApiKeys, opts.ServiceLogs)

	v1 := opts.Router.PathPrefix("/v1/articles").Subrouter()

	v1.HandleFunc("", handleListArticlesV1).Methods(http.MethodGet)
	v1.Handle("", requiresInternalAuth(http.HandlerFunc(handleCreateArticleV1))).Methods(http.MethodPost)

	v1 = opts.Router.PathPrefix("/v1/article").Subrouter()

	v1.HandleFunc("/{slug}", handleGetArticleV1).Methods(http.MethodGet)
	v1.Handle("/{slug}", requiresInternalAuth(http.HandlerFunc(handleUpdateArticleV1))).Methods(http.MethodPatch)
	v1.Handle("/{slug}", requiresInternalAuth(http.HandlerFunc(handleDeleteArticleV1))).Methods(http.MethodDelete)
	v1.Handle("/{slug}/publish", requiresInternalAuth(http.HandlerFunc(handlePublishArticleV1))).Methods(http.MethodPost)
	v1.Handle("/{slug}/publish", requiresInternalAuth(http.HandlerFunc(handleUnpublishArticleV1))).Methods(http.MethodDelete)
}

type handleCreateArticleV1Input struct {
	PlatformId *string `json:"platformId"`
	Title      string  `json:"title"`
	Body       string  `json:"body"`
}

func handleCreateArticleV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read request body", ErrorInvalidInput)
		return
	}
	var input handleCreateArticleV1Input
	if err := json.Unmarshal(requestBody, &input); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("creating article[%s]", input.Title))

	article, err := models.CreateArticleV1(models.CreateArticleV1Opts{
		Db: db,

		PlatformId: input.PlatformId,
		Title:      input.Title,
		Body:       input.Body,
	})
	if err != nil {
		if errors.Is(err, models.ErrorDuplicateEntry) {
			common.SendHttpFailResponse(w, r, http.StatusConflict, "failed to create article, slug already exists", ErrorInvalidInput)
			return
		}
		if errors.Is(err, models.ErrorInvalidInput) {
			common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to create article", ErrorInvalidInput)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to create article", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", article)
}

func handleListArticlesV1(w http.ResponseWriter, r *http.Request) {
	// Anonymous readers only see published articles; drafts require the
	// internal api key
	publishedOnly := !isInternalRequest(r)

	var platformId *string
	if value := r.URL.Query().Get("platformId"); value != "" {
		if err := validate.Uuid(value); err != nil {
			common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid platform id", ErrorInvalidInput)
			return
		}
		platformId = &value
	}

	articles, err := models.ListArticlesV1(models.ListArticlesV1Opts{
		Db: db,

		PlatformId:    platformId,
		PublishedOnly: publishedOnly,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to list articles", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", articles)
}

func handleGetArticleV1(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]
	if err := validate.Slug(slug); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid slug", ErrorInvalidInput)
		return
	}

	article, err := models.GetArticleV1(models.GetArticleV1Opts{
		Db:   db,
		Slug: &slug,
	})
	if err != nil {
		if errors.Is(err, models.ErrorNotFound) {
			common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find article", ErrorNotFound)
			return
		}
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to get article", ErrorDatabaseIssue)
		return
	}
	if !article.IsPublished && !isInternalRequest(r) {
		// A draft is indistinguishable from a missing article for
		// anonymous readers
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find article", ErrorNotFound)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok", article)
}

type handleUpdateArticleV1Input struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

func handleUpdateArticleV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	vars := mux.Vars(r)
	slug := vars["slug"]
	if err := validate.Slug(slug); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid slug", ErrorInvalidInput)
		return
	}

	article, err := models.GetArticleV1(models.GetArticleV1Opts{
		Db:   db,
		Slug: &slug,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find article", ErrorNotFound)
		return
	}

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to read request body", ErrorInvalidInput)
		return
	}
	var input handleUpdateArticleV1Input
	if err := json.Unmarshal(requestBody, &input); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to parse request body", ErrorInvalidInput)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("updating article[%s]", article.Id))

	if err := models.UpdateArticleV1(models.UpdateArticleV1Opts{
		Db: db,

		Id:    article.Id,
		Title: input.Title,
		Body:  input.Body,
	}); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to update article", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
}

func handleDeleteArticleV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	vars := mux.Vars(r)
	slug := vars["slug"]
	if err := validate.Slug(slug); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid slug", ErrorInvalidInput)
		return
	}

	article, err := models.GetArticleV1(models.GetArticleV1Opts{
		Db:   db,
		Slug: &slug,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find article", ErrorNotFound)
		return
	}
	log(common.LogLevelDebug, fmt.Sprintf("deleting article[%s]", article.Id))

	if err := models.DeleteArticleV1(models.DeleteArticleV1Opts{
		Db: db,
		Id: article.Id,
	}); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to delete article", ErrorDatabaseIssue)
		return
	}
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
}

func handlePublishArticleV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	vars := mux.Vars(r)
	slug := vars["slug"]
	if err := validate.Slug(slug); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid slug", ErrorInvalidInput)
		return
	}

	article, err := models.GetArticleV1(models.GetArticleV1Opts{
		Db:   db,
		Slug: &slug,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find article", ErrorNotFound)
		return
	}

	if err := models.PublishArticleV1(models.PublishArticleV1Opts{
		Db: db,
		Id: article.Id,
	}); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to publish article", ErrorDatabaseIssue)
		return
	}
	log(common.LogLevelInfo, fmt.Sprintf("published article[%s]", article.Id))
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
}

func handleUnpublishArticleV1(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(common.HttpContextLogger).(common.HttpRequestLogger)
	vars := mux.Vars(r)
	slug := vars["slug"]
	if err := validate.Slug(slug); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusBadRequest, "failed to receive a valid slug", ErrorInvalidInput)
		return
	}

	article, err := models.GetArticleV1(models.GetArticleV1Opts{
		Db:   db,
		Slug: &slug,
	})
	if err != nil {
		common.SendHttpFailResponse(w, r, http.StatusNotFound, "failed to find article", ErrorNotFound)
		return
	}

	if err := models.UnpublishArticleV1(models.UnpublishArticleV1Opts{
		Db: db,
		Id: article.Id,
	}); err != nil {
		common.SendHttpFailResponse(w, r, http.StatusInternalServerError, "failed to unpublish article", ErrorDatabaseIssue)
		return
	}
	log(common.LogLevelInfo, fmt.Sprintf("unpublished article[%s]", article.Id))
	common.SendHttpSuccessResponse(w, r, http.StatusOK, "ok")
}
