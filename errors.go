package dealing

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrAPI is the kind of platform errors whose code is not recognized. Every
// classified error matches it as well.
var ErrAPI = errors.New("api request failed")

// APIError is a platform error classified by its error code.
type APIError struct {
	Code  string
	Kind  error
	Cause error
}

func (ae *APIError) Error() string {
	return fmt.Sprintf("%v: [%v]", ae.Kind, ae.Code)
}

func (ae *APIError) Is(target error) bool {
	return target == ErrAPI
}

func (ae *APIError) Unwrap() []error {
	if ae.Cause == nil {
		return []error{ae.Kind}
	}

	return []error{ae.Kind, ae.Cause}
}

// ErrorRegistry maps platform error codes to error kinds. A code missing from
// the registry is classified as ErrAPI and reported once per registry.
type ErrorRegistry struct {
	codes map[string]error

	mutex  sync.Mutex
	warned map[string]bool
	logger Logger
}

// NewErrorRegistry creates a registry of all known platform error codes.
// Unrecognized codes are reported through the logger or, if it is nil,
// written to the standard error.
func NewErrorRegistry(logger Logger) *ErrorRegistry {
	return &ErrorRegistry{
		codes:  errorCodes,
		warned: make(map[string]bool),
		logger: logger,
	}
}

func (er *ErrorRegistry) SetLogger(logger Logger) {
	er.mutex.Lock()
	defer er.mutex.Unlock()

	er.logger = logger
}

func (er *ErrorRegistry) Classify(code string) *APIError {
	if kind, ok := er.codes[code]; ok {
		return &APIError{Code: code, Kind: kind}
	}

	er.warnOnce(code)

	return &APIError{Code: code, Kind: ErrAPI}
}

func (er *ErrorRegistry) warnOnce(code string) {
	er.mutex.Lock()
	defer er.mutex.Unlock()

	if er.warned[code] {
		return
	}

	er.warned[code] = true

	if er.logger == nil {
		_, _ = fmt.Fprintf(os.Stderr, "dealing: unrecognized error code %v\n", code)
		return
	}

	er.logger.Warningf("unrecognized error code [%v]", code)
}

var DefaultErrorRegistry = NewErrorRegistry(nil)

func ClassifyError(code string) *APIError {
	return DefaultErrorRegistry.Classify(code)
}
