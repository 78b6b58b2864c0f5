package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing"
	"github.com/lukasz-zimnoch/dexly/dealing/model"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	liveURL = "https://api.ig.com/gateway/deal/"
	demoURL = "https://demo-api.ig.com/gateway/deal/"
)

const (
	headerAPIKey        = "X-IG-API-KEY"
	headerClientToken   = "CST"
	headerSecurityToken = "X-SECURITY-TOKEN"
	headerVersion       = "Version"
)

const contentType = "application/json; charset=UTF-8"

const httpTimeout = 2 * time.Minute

// Session talks to the dealing platform over its REST API. Requests other
// than SignIn need the tokens obtained by a successful SignIn.
type Session struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	mutex         sync.RWMutex
	clientToken   string
	securityToken string
}

func NewSession(platform dealing.Platform, apiKey string) *Session {
	baseURL := liveURL
	if platform == dealing.PlatformDemo {
		baseURL = demoURL
	}

	return newSession(baseURL, apiKey)
}

func newSession(baseURL, apiKey string) *Session {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Session{
		httpClient: &http.Client{Timeout: httpTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// SignIn creates a platform session and keeps its tokens for the following
// requests.
func (s *Session) SignIn(
	ctx context.Context,
	identifier string,
	password string,
) error {
	body, err := dealing.NewSignInRequest(identifier, password)
	if err != nil {
		return err
	}

	_, header, err := s.do(ctx, http.MethodPost, "session", nil, body, 2)
	if err != nil {
		return fmt.Errorf("could not sign in: [%w]", err)
	}

	clientToken := header.Get(headerClientToken)
	securityToken := header.Get(headerSecurityToken)

	if len(clientToken) == 0 || len(securityToken) == 0 {
		return fmt.Errorf("sign in response does not contain session tokens")
	}

	s.mutex.Lock()
	s.clientToken = clientToken
	s.securityToken = securityToken
	s.mutex.Unlock()

	return nil
}

// SignOut closes the platform session.
func (s *Session) SignOut(ctx context.Context) error {
	if !s.IsSignedIn() {
		return nil
	}

	_, _, err := s.do(ctx, http.MethodDelete, "session", nil, nil, 1)
	if err != nil {
		return fmt.Errorf("could not sign out: [%w]", err)
	}

	s.mutex.Lock()
	s.clientToken = ""
	s.securityToken = ""
	s.mutex.Unlock()

	return nil
}

func (s *Session) IsSignedIn() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.clientToken) > 0 && len(s.securityToken) > 0
}

func (s *Session) Get(
	ctx context.Context,
	path string,
	params url.Values,
	apiVersion int,
) (model.Raw, error) {
	result, _, err := s.do(ctx, http.MethodGet, path, params, nil, apiVersion)
	return result, err
}

func (s *Session) Post(
	ctx context.Context,
	path string,
	body model.Raw,
	apiVersion int,
) (model.Raw, error) {
	result, _, err := s.do(ctx, http.MethodPost, path, nil, body, apiVersion)
	return result, err
}

func (s *Session) do(
	ctx context.Context,
	method string,
	path string,
	params url.Values,
	body model.Raw,
	apiVersion int,
) (model.Raw, http.Header, error) {
	request, err := s.newRequest(ctx, method, path, params, body, apiVersion)
	if err != nil {
		return nil, nil, err
	}

	response, err := s.httpClient.Do(request)
	if err != nil {
		return nil, nil, &dealing.TransportError{Err: err}
	}
	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, nil, &dealing.TransportError{
			StatusCode: response.StatusCode,
			Err:        err,
		}
	}

	if response.StatusCode >= http.StatusBadRequest {
		return nil, nil, responseError(response.StatusCode, content)
	}

	result := model.Raw{}

	if len(bytes.TrimSpace(content)) > 0 {
		if err := json.Unmarshal(content, &result); err != nil {
			return nil, nil, &dealing.TransportError{
				StatusCode: response.StatusCode,
				Err: fmt.Errorf(
					"could not unmarshal response: [%v]",
					err,
				),
			}
		}
	}

	return result, response.Header, nil
}

func (s *Session) newRequest(
	ctx context.Context,
	method string,
	path string,
	params url.Values,
	body model.Raw,
	apiVersion int,
) (*http.Request, error) {
	address := s.baseURL + strings.TrimPrefix(path, "/")
	if len(params) > 0 {
		address += "?" + params.Encode()
	}

	var content io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request body: [%v]", err)
		}

		content = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, address, content)
	if err != nil {
		return nil, fmt.Errorf("could not create request: [%v]", err)
	}

	request.Header.Set("Accept", contentType)
	request.Header.Set("Content-Type", contentType)
	request.Header.Set(headerAPIKey, s.apiKey)
	request.Header.Set(headerVersion, strconv.Itoa(apiVersion))

	s.mutex.RLock()
	if len(s.clientToken) > 0 {
		request.Header.Set(headerClientToken, s.clientToken)
		request.Header.Set(headerSecurityToken, s.securityToken)
	}
	s.mutex.RUnlock()

	return request, nil
}

func responseError(statusCode int, content []byte) *dealing.TransportError {
	var errorResponse struct {
		ErrorCode string `json:"errorCode"`
	}

	transportErr := &dealing.TransportError{StatusCode: statusCode}

	if err := json.Unmarshal(content, &errorResponse); err != nil {
		transportErr.Err = fmt.Errorf(
			"unexpected response: [%v]",
			strings.TrimSpace(string(content)),
		)
		return transportErr
	}

	transportErr.Code = errorResponse.ErrorCode

	return transportErr
}
