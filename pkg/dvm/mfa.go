package dvm

import (
	"fmt"
	"net/http"
	"time"
)

type EnrollMfaV1Input struct {
	MfaType string  `json:"mfaType"`
	Name    *string `json:"name"`
}

type EnrollMfaV1Output struct {
	Data EnrollMfaV1OutputData

	http.Response
}

type EnrollMfaV1OutputData struct {
	Id   string  `json:"id"`
	Type string  `json:"type"`
	Name *string `json:"name"`

	// Secret is the shared seed of the factor and is only ever
	// returned once, at enrollment
	Secret string `json:"secret"`

	// Uri is an otpauth:// uri encoding the secret for authenticator
	// apps
	Uri string `json:"uri"`

	// QrCode is a base64-encoded png data uri of the Uri above
	QrCode string `json:"qrCode"`
}

func (c Client) EnrollMfaV1(input EnrollMfaV1Input) (*EnrollMfaV1Output, error) {
	var outputData EnrollMfaV1OutputData
	outputClient, err := c.do(request{
		Method: http.MethodPost,
		Path:   "/api/v1/user/mfa",
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
		case ErrorMfaLimitReached.Error():
			err = ErrorMfaLimitReached
		}
	}
	return &EnrollMfaV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type VerifyMfaEnrollmentV1Input struct {
	MfaId string `json:"-"`
	Value string `json:"value"`
}

type VerifyMfaEnrollmentV1Output struct {
	Data VerifyMfaEnrollmentV1OutputData

	http.Response
}

type VerifyMfaEnrollmentV1OutputData struct {
	Id     string `json:"id"`
	Type   string `json:"type"`
	UserId string `json:"userId"`
}

func (c Client) VerifyMfaEnrollmentV1(input VerifyMfaEnrollmentV1Input) (*VerifyMfaEnrollmentV1Output, error) {
	var outputData VerifyMfaEnrollmentV1OutputData
	outputClient, err := c.do(request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/v1/user/mfa/%s", input.MfaId),
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
		case ErrorMfaTokenInvalid.Error():
			err = ErrorMfaTokenInvalid
		case ErrorNotFound.Error():
			err = ErrorNotFound
		}
	}
	return &VerifyMfaEnrollmentV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type DeleteMfaV1Input struct {
	MfaId string `json:"-"`
}

type DeleteMfaV1Output struct {
	Data DeleteMfaV1OutputData

	http.Response
}

type DeleteMfaV1OutputData struct {
	Id           string `json:"id"`
	IsSuccessful bool   `json:"isSuccessful"`
}

func (c Client) DeleteMfaV1(input DeleteMfaV1Input) (*DeleteMfaV1Output, error) {
	var outputData DeleteMfaV1Output
	outputClient, err := c.do(request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/api/v1/user/mfa/%s", input.MfaId),
		Output: &outputData.Data,
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
	outputData.Response = outputClient.GetResponse()
	return &outputData, err
}

type ListMfasV1Output struct {
	Data ListMfasV1OutputData

	http.Response
}

type ListMfasV1OutputData []ListMfasV1OutputFactor

type ListMfasV1OutputFactor struct {
	Id            string     `json:"id"`
	Type          string     `json:"type"`
	Name          *string    `json:"name"`
	UserId        string     `json:"userId"`
	IsVerified    bool       `json:"isVerified"`
	VerifiedAt    *time.Time `json:"verifiedAt"`
	CreatedAt     *time.Time `json:"createdAt"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt"`
}

func (c Client) ListMfasV1() (*ListMfasV1Output, error) {
	var outputData ListMfasV1OutputData
	outputClient, err := c.do(request{
		Method: http.MethodGet,
		Path:   "/api/v1/user/mfas",
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
	}
	return &ListMfasV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type ListAvailableMfaTypesOutput struct {
	Data []ListAvailableMfaTypesOutputType

	http.Response
}

type ListAvailableMfaTypesOutputType struct {
	Description string `json:"description"`
	Value       string `json:"value"`
}

func (c Client) ListAvailableMfaTypes() (*ListAvailableMfaTypesOutput, error) {
	var outputData []ListAvailableMfaTypesOutputType
	outputClient, err := c.do(request{
		Method: http.MethodOptions,
		Path:   "/api/v1/user/mfas",
		Output: &outputData,
	})
	if err != nil && outputClient == nil {
		return nil, err
	}
	return &ListAvailableMfaTypesOutput{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type CreateMfaChallengeV1Input struct {
	// FactorId when left unset lets the controller pick the user's
	// first verified factor
	FactorId *string `json:"factorId"`
}

type CreateMfaChallengeV1Output struct {
	Data CreateMfaChallengeV1OutputData

	http.Response
}

type CreateMfaChallengeV1OutputData struct {
	ChallengeId string `json:"challengeId"`
	FactorId    string `json:"factorId"`
	FactorType  string `json:"factorType"`
	ExpiresAt   string `json:"expiresAt"`
}

func (c Client) CreateMfaChallengeV1(input CreateMfaChallengeV1Input) (*CreateMfaChallengeV1Output, error) {
	var outputData CreateMfaChallengeV1OutputData
	outputClient, err := c.do(request{
		Method: http.MethodPost,
		Path:   "/api/v1/mfa/challenge",
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
		case ErrorNoFactorsEnrolled.Error():
			err = ErrorNoFactorsEnrolled
		case ErrorNotFound.Error():
			err = ErrorNotFound
		}
	}
	return &CreateMfaChallengeV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type VerifyMfaChallengeV1Input struct {
	ChallengeId string `json:"challengeId"`
	Value       string `json:"value"`
}

type VerifyMfaChallengeV1Output struct {
	Data VerifyMfaChallengeV1OutputData

	http.Response
}

type VerifyMfaChallengeV1OutputData struct {
	CurrentLevel string `json:"currentLevel"`
	NextLevel    string `json:"nextLevel"`
}

func (c Client) VerifyMfaChallengeV1(input VerifyMfaChallengeV1Input) (*VerifyMfaChallengeV1Output, error) {
	var outputData VerifyMfaChallengeV1OutputData
	outputClient, err := c.do(request{
		Method: http.MethodPost,
		Path:   "/api/v1/mfa/verify",
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
		case ErrorChallengeExpired.Error():
			err = ErrorChallengeExpired
		case ErrorMfaTokenInvalid.Error():
			err = ErrorMfaTokenInvalid
		}
	}
	return &VerifyMfaChallengeV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type GetAalV1Output struct {
	Data GetAalV1OutputData

	http.Response
}

type GetAalV1OutputData struct {
	CurrentLevel string `json:"currentLevel"`
	NextLevel    string `json:"nextLevel"`
}

func (c Client) GetAalV1() (*GetAalV1Output, error) {
	var outputData GetAalV1OutputData
	outputClient, err := c.do(request{
		Method: http.MethodGet,
		Path:   "/api/v1/mfa/aal",
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
	}
	return &GetAalV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}
