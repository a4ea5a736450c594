package dvm

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Article struct {
	Id            string     `json:"id"`
	PlatformId    *string    `json:"platformId"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	IsPublished   bool       `json:"isPublished"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     *time.Time `json:"createdAt"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt"`
}

type ListArticlesV1Input struct {
	// PlatformId when set restricts the listing to guides for a
	// single platform
	PlatformId *string `json:"-"`
}

type ListArticlesV1Output struct {
	Data []Article

	http.Response
}

func (c Client) ListArticlesV1(input ListArticlesV1Input) (*ListArticlesV1Output, error) {
	var query url.Values
	if input.PlatformId != nil {
		query = url.Values{"platformId": []string{*input.PlatformId}}
	}
	var outputData []Article
	outputClient, err := c.do(request{
		Method: http.MethodGet,
		Path:   "/api/v1/articles",
		Query:  query,
		Output: &outputData,
	})
	if err != nil && outputClient == nil {
		return nil, err
	}
	return &ListArticlesV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type GetArticleV1Input struct {
	Slug string `json:"-"`
}

type GetArticleV1Output struct {
	Data Article

	http.Response
}

type CreateArticleV1Input struct {
	PlatformId *string `json:"platformId"`
	Title      string  `json:"title"`
	Body       string  `json:"body"`
}

type CreateArticleV1Output struct {
	Data Article

	http.Response
}

// CreateArticleV1 requires the client to be configured with an api
// key
func (c Client) CreateArticleV1(input CreateArticleV1Input) (*CreateArticleV1Output, error) {
	var outputData Article
	outputClient, err := c.do(request{
		Method: http.MethodPost,
		Path:   "/api/v1/articles",
		Data:   input,
		Output: &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
		switch outputClient.GetErrorCode().Error() {
		case ErrorAuthRequired.Error():
			err = ErrorAuthRequired
		case ErrorDuplicateEntry.Error():
			err = ErrorDuplicateEntry
		}
	}
	return &CreateArticleV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type PublishArticleV1Input struct {
	Slug string `json:"-"`
}

type PublishArticleV1Output struct {
	http.Response
}

// PublishArticleV1 requires the client to be configured with an api
// key
func (c Client) PublishArticleV1(input PublishArticleV1Input) (*PublishArticleV1Output, error) {
	outputClient, err := c.do(request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/v1/article/%s/publish", input.Slug),
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
		switch outputClient.GetErrorCode().Error() {
		case ErrorAuthRequired.Error():
			err = ErrorAuthRequired
		case ErrorNotFound.Error():
			err = ErrorNotFound
		}
	}
	return &PublishArticleV1Output{
		Response: outputClient.GetResponse(),
	}, err
}

func (c Client) GetArticleV1(input GetArticleV1Input) (*GetArticleV1Output, error) {
	var outputData Article
	outputClient, err := c.do(request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/v1/article/%s", input.Slug),
		Output: &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
		switch outputClient.GetErrorCode().Error() {
		case ErrorNotFound.Error():
			err = ErrorNotFound
		}
	}
	return &GetArticleV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}
