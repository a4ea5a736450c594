package dvm

import (
	"fmt"
	"net/http"
	"time"
)

type Platform struct {
	Id            string     `json:"id"`
	Slug          string     `json:"slug"`
	Name          string     `json:"name"`
	Url           *string    `json:"url"`
	Description   *string    `json:"description"`
	IconFilename  *string    `json:"iconFilename"`
	IsPublished   bool       `json:"isPublished"`
	DisplayOrder  int        `json:"displayOrder"`
	CreatedAt     *time.Time `json:"createdAt"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt"`
}

type ListPlatformsV1Output struct {
	Data []Platform

	http.Response
}

func (c Client) ListPlatformsV1() (*ListPlatformsV1Output, error) {
	var outputData []Platform
	outputClient, err := c.do(request{
		Method: http.MethodGet,
		Path:   "/api/v1/platforms",
		Output: &outputData,
	})
	if err != nil && outputClient == nil {
		return nil, err
	}
	return &ListPlatformsV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type GetPlatformV1Input struct {
	Slug string `json:"-"`
}

type GetPlatformV1Output struct {
	Data Platform

	http.Response
}

func (c Client) GetPlatformV1(input GetPlatformV1Input) (*GetPlatformV1Output, error) {
	var outputData Platform
	outputClient, err := c.do(request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/v1/platform/%s", input.Slug),
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
	return &GetPlatformV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type CreatePlatformV1Input struct {
	Name        string  `json:"name"`
	Url         *string `json:"url"`
	Description *string `json:"description"`
}

type CreatePlatformV1Output struct {
	Data Platform

	http.Response
}

// CreatePlatformV1 requires the client to be configured with an api
// key
func (c Client) CreatePlatformV1(input CreatePlatformV1Input) (*CreatePlatformV1Output, error) {
	var outputData Platform
	outputClient, err := c.do(request{
		Method: http.MethodPost,
		Path:   "/api/v1/platforms",
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
	return &CreatePlatformV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type UpdatePlatformV1Input struct {
	Slug string `json:"-"`

	Name         *string `json:"name"`
	Url          *string `json:"url"`
	Description  *string `json:"description"`
	IsPublished  *bool   `json:"isPublished"`
	DisplayOrder *int    `json:"displayOrder"`
}

type UpdatePlatformV1Output struct {
	http.Response
}

// UpdatePlatformV1 requires the client to be configured with an api
// key
func (c Client) UpdatePlatformV1(input UpdatePlatformV1Input) (*UpdatePlatformV1Output, error) {
	outputClient, err := c.do(request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/api/v1/platform/%s", input.Slug),
		Data:   input,
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
	return &UpdatePlatformV1Output{
		Response: outputClient.GetResponse(),
	}, err
}
