package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earcherc/realfoodfinder/internal/config"
	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func configured() config.FeedbackConfig {
	return config.FeedbackConfig{Owner: "earcherc", Repo: "realfoodfinder", Token: "tkn", Labels: []string{"feedback"}}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "[Feedback] short message", Title("short message"))

	exactly70 := strings.Repeat("a", 70)
	assert.Equal(t, "[Feedback] "+exactly70, Title(exactly70))

	long := strings.Repeat("b", 80)
	assert.Equal(t, "[Feedback] "+strings.Repeat("b", 67)+"...", Title(long))
}

func TestBody(t *testing.T) {
	got := Body(domain.FeedbackRequest{Message: "the map is slow", Pathname: "/locations"})
	assert.Contains(t, got, "the map is slow")
	assert.Contains(t, got, "- Page: /locations")
	assert.Contains(t, got, "- URL: unknown")
	assert.Contains(t, got, "- Contact: not provided")
}

func TestSend_NotConfigured(t *testing.T) {
	f := NewForwarder(discard, config.FeedbackConfig{Owner: "x"})
	err := f.Send(context.Background(), domain.FeedbackRequest{Message: "long enough message"})
	assert.True(t, errors.Is(err, e.ErrNotConfigured))
}

func TestSend_CreatesIssue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/earcherc/realfoodfinder/issues", r.URL.Path)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))

		var got issue
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "[Feedback] please add more farms", got.Title)
		assert.Equal(t, []string{"feedback"}, got.Labels)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	f := NewForwarder(discard, configured(), WithBaseURL(srv.URL))
	require.NoError(t, f.Send(context.Background(), domain.FeedbackRequest{Message: "please add more farms"}))
}

func TestSend_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	f := NewForwarder(discard, configured(), WithBaseURL(srv.URL), WithBackoff(time.Millisecond))
	require.NoError(t, f.Send(context.Background(), domain.FeedbackRequest{Message: "please add more farms"}))
	assert.Equal(t, int32(3), calls.Load())
}

func TestSend_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	f := NewForwarder(discard, configured(), WithBaseURL(srv.URL), WithBackoff(time.Millisecond))
	err := f.Send(context.Background(), domain.FeedbackRequest{Message: "please add more farms"})
	assert.True(t, errors.Is(err, e.ErrInternal))
	assert.Equal(t, int32(maxAttempts), calls.Load())
}

func TestSend_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Bad credentials"}`)
	}))
	t.Cleanup(srv.Close)

	f := NewForwarder(discard, configured(), WithBaseURL(srv.URL), WithBackoff(time.Millisecond))
	err := f.Send(context.Background(), domain.FeedbackRequest{Message: "please add more farms"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad credentials")
	assert.Equal(t, int32(1), calls.Load())
}
