package dvm

import (
	"net/http"
	"time"
)

type CreateSessionV1Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Hostname string `json:"hostname"`
}

type CreateSessionV1Output struct {
	Data CreateSessionV1OutputData

	http.Response
}

type CreateSessionV1OutputData struct {
	SessionId    string `json:"sessionId"`
	SessionToken string `json:"value"`
}

func (c Client) CreateSessionV1(input CreateSessionV1Input) (*CreateSessionV1Output, error) {
	var outputData CreateSessionV1OutputData
	outputClient, err := c.do(request{
		Method: http.MethodPost,
		Path:   "/api/v1/session",
		Data:   input,
		Output: &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
		switch outputClient.GetErrorCode().Error() {
		case ErrorEmailNotVerified.Error():
			err = ErrorEmailNotVerified
		case ErrorInvalidCredentials.Error():
			err = ErrorInvalidCredentials
		}
	}
	return &CreateSessionV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type DeleteSessionV1Output struct {
	Data DeleteSessionV1OutputData

	http.Response
}

type DeleteSessionV1OutputData struct {
	// SessionId is only populated if the call to the controller was
	// successful as indicated by the `.IsSuccessful` property
	SessionId    string `json:"sessionId"`
	IsSuccessful bool   `json:"isSuccessful"`
}

func (c Client) DeleteSessionV1() (*DeleteSessionV1Output, error) {
	var outputData DeleteSessionV1OutputData
	outputClient, err := c.do(request{
		Method: http.MethodDelete,
		Path:   "/api/v1/session",
		Output: &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
		switch outputClient.GetErrorCode().Error() {
		case ErrorAuthRequired.Error():
			err = ErrorAuthRequired
		case ErrorUnknown.Error():
			err = ErrorUnknown
		}
	}
	return &DeleteSessionV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type ValidateSessionV1Output struct {
	Data ValidateSessionV1OutputData

	http.Response
}

type ValidateSessionV1OutputData struct {
	Id           string    `json:"id"`
	ExpiresAt    time.Time `json:"expiresAt"`
	StartedAt    time.Time `json:"startedAt"`
	TimeLeft     string    `json:"timeLeft"`
	UserId       string    `json:"userId"`
	Username     string    `json:"username"`
	CurrentLevel string    `json:"currentLevel"`
	NextLevel    string    `json:"nextLevel"`

	// IsExpired is derived locally from ExpiresAt after a successful
	// retrieval
	IsExpired bool `json:"-"`
}

func (c Client) ValidateSessionV1() (*ValidateSessionV1Output, error) {
	var outputData ValidateSessionV1OutputData
	outputClient, err := c.do(request{
		Method: http.MethodGet,
		Path:   "/api/v1/session",
		Output: &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
		switch outputClient.GetErrorCode().Error() {
		case ErrorAuthRequired.Error():
			err = ErrorAuthRequired
		}
	} else {
		outputData.IsExpired = outputData.ExpiresAt.Before(time.Now())
	}
	return &ValidateSessionV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}
