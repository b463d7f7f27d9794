package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/earcherc/realfoodfinder/pkg/e"
)

const MaxBodyBytes = 1 << 20

const msgInvalidBody = "Invalid request body."

// MaxBytes caps every request body at limit bytes.
func MaxBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// DecodeJSON reads exactly one JSON value into dst. Unknown fields are
// ignored. Malformed, oversized or trailing input is an *e.ValidationError
// on the "body" field.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return e.NewValidationError("body", "Request body is too large.")
		}
		return e.NewValidationError("body", msgInvalidBody)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return e.NewValidationError("body", msgInvalidBody)
	}
	return nil
}
