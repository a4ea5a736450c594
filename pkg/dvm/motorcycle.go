package dvm

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Motorcycle struct {
	Id            string     `json:"id"`
	UserId        string     `json:"userId"`
	Name          string     `json:"name"`
	Make          *string    `json:"make"`
	Model         *string    `json:"model"`
	Year          *int       `json:"year"`
	CreatedAt     *time.Time `json:"createdAt"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt"`
}

type TireSet struct {
	Id               string     `json:"id"`
	MotorcycleId     string     `json:"motorcycleId"`
	Position         string     `json:"position"`
	Brand            string     `json:"brand"`
	Model            string     `json:"model"`
	InstalledAt      *time.Time `json:"installedAt"`
	InstalledMileage int        `json:"installedMileage"`
	ExpectedLifeKm   *int       `json:"expectedLifeKm"`
	RemovedAt        *time.Time `json:"removedAt"`
	CreatedAt        *time.Time `json:"createdAt"`
	LastUpdatedAt    *time.Time `json:"lastUpdatedAt"`
}

type ListMotorcyclesV1Output struct {
	Data []Motorcycle

	http.Response
}

func (c Client) ListMotorcyclesV1() (*ListMotorcyclesV1Output, error) {
	var outputData []Motorcycle
	outputClient, err := c.do(request{
		Method: http.MethodGet,
		Path:   "/api/v1/motorcycles",
		Output: &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
		switch outputClient.GetErrorCode().Error() {
		case ErrorAuthRequired.Error():
			err = ErrorAuthRequired
		case ErrorMfaRequired.Error():
			err = ErrorMfaRequired
		}
	}
	return &ListMotorcyclesV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type CreateMotorcycleV1Input struct {
	Name  string  `json:"name"`
	Make  *string `json:"make"`
	Model *string `json:"model"`
	Year  *int    `json:"year"`
}

type CreateMotorcycleV1Output struct {
	Data Motorcycle

	http.Response
}

func (c Client) CreateMotorcycleV1(input CreateMotorcycleV1Input) (*CreateMotorcycleV1Output, error) {
	var outputData Motorcycle
	outputClient, err := c.do(request{
		Method: http.MethodPost,
		Path:   "/api/v1/motorcycles",
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
		case ErrorMfaRequired.Error():
			err = ErrorMfaRequired
		}
	}
	return &CreateMotorcycleV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type ListTireSetsV1Input struct {
	MotorcycleId string `json:"-"`

	// ActiveOnly restricts the listing to tires currently mounted
	ActiveOnly bool `json:"-"`
}

type ListTireSetsV1Output struct {
	Data []TireSet

	http.Response
}

func (c Client) ListTireSetsV1(input ListTireSetsV1Input) (*ListTireSetsV1Output, error) {
	var query url.Values
	if input.ActiveOnly {
		query = url.Values{"active": []string{"true"}}
	}
	var outputData []TireSet
	outputClient, err := c.do(request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/v1/motorcycle/%s/tires", input.MotorcycleId),
		Query:  query,
		Output: &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
		switch outputClient.GetErrorCode().Error() {
		case ErrorAuthRequired.Error():
			err = ErrorAuthRequired
		case ErrorMfaRequired.Error():
			err = ErrorMfaRequired
		case ErrorNotFound.Error():
			err = ErrorNotFound
		}
	}
	return &ListTireSetsV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type CreateTireSetV1Input struct {
	MotorcycleId     string     `json:"-"`
	Position         string     `json:"position"`
	Brand            string     `json:"brand"`
	Model            string     `json:"model"`
	InstalledAt      *time.Time `json:"installedAt"`
	InstalledMileage int        `json:"installedMileage"`
	ExpectedLifeKm   *int       `json:"expectedLifeKm"`
}

type CreateTireSetV1Output struct {
	Data TireSet

	http.Response
}

func (c Client) CreateTireSetV1(input CreateTireSetV1Input) (*CreateTireSetV1Output, error) {
	var outputData TireSet
	outputClient, err := c.do(request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/v1/motorcycle/%s/tires", input.MotorcycleId),
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
		case ErrorMfaRequired.Error():
			err = ErrorMfaRequired
		case ErrorInvalidInput.Error():
			err = ErrorInvalidInput
		case ErrorNotFound.Error():
			err = ErrorNotFound
		}
	}
	return &CreateTireSetV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}
