package api

import (
	"errors"
	"fmt"
)

// genericErrorMessage is shown for failures that carry no server-supplied
// message, matching the dashboard's wording.
const genericErrorMessage = "Something went wrong. Please try again later."

// RemoteError is a backend rejection: a non-success HTTP status whose body
// carried a human-readable message. The message is surfaced to the user
// verbatim.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// TransportError is a network failure or a malformed response (e.g. a
// non-JSON body on an error status). Surfaced to the user as a generic
// message; always recoverable.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage converts any client error into the text shown to the user:
// the server message for backend rejections, a generic message otherwise.
func UserMessage(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return genericErrorMessage
}
