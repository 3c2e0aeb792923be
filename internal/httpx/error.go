package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/signadot/datatree/ir"
)

// HTTPError is a non-2xx response of the data server.
type HTTPError struct {
	StatusCode int
	Body       []byte
	Header     http.Header
	// JSON is the parsed body when the server sent JSON.
	JSON *ir.Node
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := string(e.Body)
	if m := ir.Get(e.JSON, "message"); m != nil && m.Type == ir.StringType {
		msg = m.String
	}
	return fmt.Sprintf("http error: status=%d %s", e.StatusCode, msg)
}

// Retryable reports whether the request may succeed if repeated.
func (e *HTTPError) Retryable() bool {
	if e == nil {
		return false
	}
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode == http.StatusRequestTimeout ||
		(e.StatusCode >= 500 && e.StatusCode <= 599)
}

// IsNotFound reports whether err is an HTTPError with status 404.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

func jsonBody(body []byte) *ir.Node {
	if len(body) == 0 {
		return nil
	}
	n, err := ir.FromJSON(body)
	if err != nil {
		return nil
	}
	return n
}
