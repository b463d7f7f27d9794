package middleware

import (
	"io"
	"log"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const redacted = "REDACTED"

type redactingFormatter struct {
	next   chimw.LogFormatter
	params []string
}

// AccessLog is chi's request logger writing to out, with the values of the
// named query parameters masked in the logged request line.
func AccessLog(out io.Writer, params ...string) func(http.Handler) http.Handler {
	return chimw.RequestLogger(&redactingFormatter{
		next:   &chimw.DefaultLogFormatter{Logger: log.New(out, "", log.LstdFlags), NoColor: true},
		params: params,
	})
}

func (f *redactingFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	return f.next.NewLogEntry(f.redact(r))
}

func (f *redactingFormatter) redact(r *http.Request) *http.Request {
	if r.URL.RawQuery == "" {
		return r
	}
	q := r.URL.Query()
	changed := false
	for _, p := range f.params {
		if _, ok := q[p]; ok {
			q.Set(p, redacted)
			changed = true
		}
	}
	if !changed {
		return r
	}

	masked := r.WithContext(r.Context())
	u := *r.URL
	u.RawQuery = q.Encode()
	masked.URL = &u
	masked.RequestURI = u.RequestURI()
	return masked
}

