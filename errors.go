package tokenlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// UsageError is returned when the command is invoked without a source.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

// --

// FetchError is returned when a remote source could not be fetched,
// either because the transport failed or the server answered with a
// non-2xx status. StatusCode is zero for transport failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch data from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch data from %s. Status: %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// --

// ReadError is returned when a local source does not exist
// or is not readable.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read data from %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// --

// ParseError is returned when the loaded bytes are not
// a well-formed document.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse data from %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// --

// TimeoutError is returned when loading did not finish
// within the configured timeout.
type TimeoutError struct {
	Source  string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("loading %s did not complete within %s", e.Source, e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// --

// SchemaValidationError is returned when a well-formed document
// does not conform to the token list schema. Errors holds every
// violation in schema traversal order.
type SchemaValidationError struct {
	Source string
	Errors []ValidationError
}

func (e *SchemaValidationError) Error() string {
	b, err := json.MarshalIndent(e.Errors, "", "  ")
	if err != nil {
		return fmt.Sprintf("validation failed: %d error(s)", len(e.Errors))
	}
	return "validation failed: " + string(b)
}

func (e *SchemaValidationError) GoString() string {
	msg := fmt.Sprintf("%s does not conform to the token list schema", e.Source)
	for _, ve := range e.Errors {
		for _, line := range strings.Split(ve.String(), "\n") {
			msg += "\n  " + line
		}
	}
	return msg
}
