package apiclient

import (
	"net/http"

	"github.com/tidwall/gjson"
)

// Response is a completed API exchange.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsJSON reports whether the body parses as JSON.
func (r *Response) IsJSON() bool {
	return gjson.ValidBytes(r.Body)
}

// Get queries the body with a gjson path such as "user.email".
func (r *Response) Get(path string) gjson.Result {
	if !r.IsJSON() {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.Body, path)
}

// Success reports whether the body carries "success": true. A missing field,
// any other value or a non-JSON body reads as false.
func (r *Response) Success() bool {
	field := r.Get("success")
	return field.Type == gjson.True
}

// Has reports whether path exists in the body.
func (r *Response) Has(path string) bool {
	return r.Get(path).Exists()
}

// String returns the string at path, or "".
func (r *Response) String(path string) string {
	return r.Get(path).String()
}

// Message returns the body's "message" field, or "".
func (r *Response) Message() string {
	return r.String("message")
}
