package api

import "errors"

// ErrMalformedResponse indicates a 2xx response whose body was present but
// could not be parsed as JSON. Success is never assumed for a body the
// client could not read.
var ErrMalformedResponse = errors.New("malformed response body")

// Error is the uniform failure shape for non-2xx responses from the purchy
// service. Message is the server's message field when the body parsed as
// JSON and carried one, otherwise "HTTP <status>". Body holds the parsed
// JSON body when available; RawBody holds the response text otherwise.
type Error struct {
	Body    any
	Message string
	RawBody string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// IsStatus reports whether err is an API error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}
	return false
}
