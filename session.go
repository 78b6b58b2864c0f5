package dealing

import (
	"context"
	"fmt"
	"github.com/lukasz-zimnoch/dexly/dealing/model"
	"net/url"
)

type Platform int

const (
	PlatformLive Platform = iota
	PlatformDemo
)

func ParsePlatform(value string) (Platform, error) {
	switch value {
	case "LIVE":
		return PlatformLive, nil
	case "DEMO":
		return PlatformDemo, nil
	}

	return -1, fmt.Errorf("unknown platform: [%v]", value)
}

func (p Platform) String() string {
	switch p {
	case PlatformLive:
		return "LIVE"
	case PlatformDemo:
		return "DEMO"
	default:
		panic("unknown platform")
	}
}

// Session performs authenticated requests against the dealing platform.
// Paths are relative to the platform's base URL.
type Session interface {
	Get(
		ctx context.Context,
		path string,
		params url.Values,
		apiVersion int,
	) (model.Raw, error)

	Post(
		ctx context.Context,
		path string,
		body model.Raw,
		apiVersion int,
	) (model.Raw, error)
}

// TransportError is returned by sessions when a request did not produce a
// successful response. Code holds the platform's error code if the response
// carried one.
type TransportError struct {
	StatusCode int
	Code       string
	Err        error
}

func (te *TransportError) Error() string {
	if len(te.Code) > 0 {
		return fmt.Sprintf(
			"request failed with status [%v] and code [%v]",
			te.StatusCode,
			te.Code,
		)
	}

	if te.Err != nil {
		return fmt.Sprintf("request failed: [%v]", te.Err)
	}

	return fmt.Sprintf("request failed with status [%v]", te.StatusCode)
}

func (te *TransportError) Unwrap() error {
	return te.Err
}

var SignInRequestType = model.MustRecordType(
	"SignInRequest",
	model.String("identifier"),
	model.String("password"),
	model.Boolean("encrypted_password"),
)

// NewSignInRequest builds the request body of a session creation.
func NewSignInRequest(identifier, password string) (model.Raw, error) {
	request, err := SignInRequestType.New(map[string]interface{}{
		"identifier": identifier,
		"password":   password,
	})
	if err != nil {
		return nil, fmt.Errorf("could not build sign in request: [%v]", err)
	}

	return model.FormatRequestBody(
		request,
		model.Raw{"encryptedPassword": false},
	), nil
}
