package dvm

import "net/http"

type JoinWaitlistV1Input struct {
	Email string `json:"email"`
}

type JoinWaitlistV1Output struct {
	Data JoinWaitlistV1OutputData

	http.Response
}

type JoinWaitlistV1OutputData struct {
	Email string `json:"email"`
}

func (c Client) JoinWaitlistV1(input JoinWaitlistV1Input) (*JoinWaitlistV1Output, error) {
	var outputData JoinWaitlistV1OutputData
	outputClient, err := c.do(request{
		Method: http.MethodPost,
		Path:   "/api/v1/waitlist",
		Data:   input,
		Output: &outputData,
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
	return &JoinWaitlistV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}
