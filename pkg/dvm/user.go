package dvm

import (
	"fmt"
	"net/http"
)

type CreateUserV1Input struct {
	// Email is the user's email address
	Email string `json:"email"`

	// Password is the user's password
	Password string `json:"password"`
}

type CreateUserV1Output struct {
	Data CreateUserV1OutputData

	http.Response
}

type CreateUserV1OutputData struct {
	Email string `json:"email"`
}

func (c Client) CreateUserV1(input CreateUserV1Input) (*CreateUserV1Output, error) {
	var outputData CreateUserV1OutputData
	outputClient, err := c.do(request{
		Method: http.MethodPost,
		Path:   "/api/v1/users",
		Data:   input,
		Output: &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
		switch outputClient.GetErrorCode().Error() {
		case ErrorEmailExists.Error():
			err = ErrorEmailExists
		case ErrorInvalidInput.Error():
			err = ErrorInvalidInput
		}
	}
	return &CreateUserV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type VerifyEmailV1Input struct {
	VerificationCode string `json:"-"`
}

type VerifyEmailV1Output struct {
	http.Response
}

func (c Client) VerifyEmailV1(input VerifyEmailV1Input) (*VerifyEmailV1Output, error) {
	outputClient, err := c.do(request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/v1/verification/%s", input.VerificationCode),
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
		switch outputClient.GetErrorCode().Error() {
		case ErrorInvalidInput.Error():
			err = ErrorInvalidInput
		}
	}
	return &VerifyEmailV1Output{
		Response: outputClient.GetResponse(),
	}, err
}
