package prometheus

import (
	"bytes"
	"net/http"

	"github.com/golang/gddo/httputil"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

const (
	contentTypePlainText = "text/plain"
	contentTypeJSON      = "application/json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// generatedResponse is a container for response output.
type generatedResponse struct {
	// Err is protocol error, if any.
	Err string `json:"error"`

	// Data is response output, if any.
	Data interface{} `json:"data"`
}

// negotiateContentType parses "Accept:" header and returns preferred content type string.
func negotiateContentType(r *http.Request) string {
	contentTypes := []string{
		contentTypePlainText,
		contentTypeJSON,
	}
	return httputil.NegotiateContentType(r, contentTypes, contentTypePlainText)
}

// writeResponse writes the status code and the response in the content type the client prefers.
// Plain text responses carry a bytes.Buffer as data.
func writeResponse(w http.ResponseWriter, r *http.Request, code int, response generatedResponse) error {
	switch negotiateContentType(r) {
	case contentTypeJSON:
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(code)
		return json.NewEncoder(w).Encode(response)
	default:
		buf, ok := response.Data.(bytes.Buffer)
		if !ok {
			w.WriteHeader(code)
			return errors.Errorf("unexpected data: %v", response.Data)
		}
		w.Header().Set("Content-Type", contentTypePlainText)
		w.WriteHeader(code)
		if _, err := w.Write(buf.Bytes()); err != nil {
			return errors.Wrap(err, "could not write response body")
		}
	}
	return nil
}
