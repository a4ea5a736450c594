package dvm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"dontverifyme/internal/common"
)

type NewClientOpts struct {
	ControllerUrl string
	ApiKey        string
	BasicAuth     *NewClientBasicAuthOpts
	BearerAuth    *NewClientBearerAuthOpts
	Id            string
}

type NewClientBasicAuthOpts struct {
	Username string
	Password string
}

type NewClientBearerAuthOpts struct {
	Token string
}

func NewClient(opts NewClientOpts) (*Client, error) {
	client := &Client{
		ApiKey:     opts.ApiKey,
		BasicAuth:  opts.BasicAuth,
		BearerAuth: opts.BearerAuth,
		HttpClient: &http.Client{},
		Id:         opts.Id,
	}

	controllerUrl, err := url.Parse(opts.ControllerUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse provided controllerUrl[%s]: %s", opts.ControllerUrl, err)
	}

	if controllerUrl.Scheme == "" {
		return nil, fmt.Errorf("failed to determine url scheme of controllerUrl[%s]", opts.ControllerUrl)
	}
	client.ControllerUrl = controllerUrl

	return client, nil
}

type Client struct {
	// ControllerUrl is the URL where the controller service is
	// accessible at
	ControllerUrl *url.URL

	// ApiKey when set is sent on every request and grants access to
	// the administrative endpoints
	ApiKey string

	BasicAuth  *NewClientBasicAuthOpts
	BearerAuth *NewClientBearerAuthOpts

	// HttpClient is the HTTP client
	HttpClient *http.Client

	// Id will be included in the user-agent for identification
	Id string
}

type request struct {
	Method string
	Path   string
	Query  url.Values
	Data   any
	Output any
}

type requestResult struct {
	errorCode error
	response  *http.Response
}

// GetErrorCode returns the error code the controller placed in the
// response envelope's data field, falling back to ErrorUnknown when
// the request never produced one
func (r *requestResult) GetErrorCode() error {
	if r == nil || r.errorCode == nil {
		return ErrorUnknown
	}
	return r.errorCode
}

func (r *requestResult) GetResponse() http.Response {
	if r == nil || r.response == nil {
		return http.Response{}
	}
	return *r.response
}

func (c Client) do(req request) (*requestResult, error) {
	controllerUrl := *c.ControllerUrl
	controllerUrl.Path = req.Path
	if req.Query != nil {
		controllerUrl.RawQuery = req.Query.Encode()
	}
	var requestBody io.Reader
	if req.Data != nil {
		requestBodyData, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request data: %s", err)
		}
		requestBody = bytes.NewBuffer(requestBodyData)
	}
	httpRequest, err := http.NewRequest(
		req.Method,
		controllerUrl.String(),
		requestBody,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %s", err)
	}
	httpRequest.Header.Add("Content-Type", "application/json")
	httpRequest.Header.Add("User-Agent", fmt.Sprintf("dontverifyme/sdk/client-%s", c.Id))
	if c.ApiKey != "" {
		httpRequest.Header.Add("x-api-key", c.ApiKey)
	}
	if c.BasicAuth != nil {
		httpRequest.SetBasicAuth(c.BasicAuth.Username, c.BasicAuth.Password)
	}
	if c.BearerAuth != nil {
		httpRequest.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.BearerAuth.Token))
	}
	httpResponse, err := c.HttpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to execute http request: %s", err)
	}
	defer httpResponse.Body.Close()
	result := requestResult{response: httpResponse}
	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return &result, fmt.Errorf("failed to read response body: %s", err)
	}
	if !isControllerResponse(httpResponse) {
		return &result, fmt.Errorf("failed to receive a response from the controller (status code: %v): %s", httpResponse.StatusCode, string(responseBody))
	}
	var response common.HttpResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return &result, fmt.Errorf("failed to parse response from controller service: %s", err)
	}
	responseData, err := json.Marshal(response.Data)
	if err != nil {
		return &result, fmt.Errorf("failed to parse response data from controller service: %s", err)
	}
	if !isSuccessResponse(httpResponse) {
		var errorCode string
		if err := json.Unmarshal(responseData, &errorCode); err != nil || errorCode == "" {
			errorCode = ErrorUnknown.Error()
		}
		result.errorCode = errors.New(errorCode)
		return &result, fmt.Errorf("failed to receive a successful response (status code: %v): %s", httpResponse.StatusCode, errorCode)
	}
	if req.Output != nil {
		if err := json.Unmarshal(responseData, req.Output); err != nil {
			return &result, fmt.Errorf("failed to unmarshal response data into output: %s", err)
		}
	}
	return &result, nil
}
