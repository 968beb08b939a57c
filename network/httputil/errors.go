package httputil

import (
	"net/http"
)

// HasErrorCode is implemented by errors that carry an HTTP status code.
type HasErrorCode interface {
	StatusCode() int
}

// DefaultErrorJson is the JSON body of every API error response.
type DefaultErrorJson struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// StatusCode returns the error's underlying error code.
func (e *DefaultErrorJson) StatusCode() int {
	return e.Code
}

// Error returns the underlying error message.
func (e *DefaultErrorJson) Error() string {
	return e.Message
}

// HandleError writes the message as a DefaultErrorJson with the given status code.
func HandleError(w http.ResponseWriter, message string, code int) {
	errJson := &DefaultErrorJson{
		Message: message,
		Code:    code,
	}
	WriteError(w, errJson)
}
