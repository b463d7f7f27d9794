// Package feedback files visitor feedback as GitHub issues.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/earcherc/realfoodfinder/internal/config"
	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
)

const (
	defaultBaseURL = "https://api.github.com"
	maxAttempts    = 3
	previewLimit   = 70
)

type Forwarder struct {
	logger  *slog.Logger
	cfg     config.FeedbackConfig
	http    *http.Client
	baseURL string
	backoff time.Duration
}

type Option func(*Forwarder)

// WithBaseURL points the forwarder at a different GitHub API host.
func WithBaseURL(u string) Option {
	return func(f *Forwarder) { f.baseURL = strings.TrimRight(u, "/") }
}

// WithBackoff sets the delay unit between attempts; attempt n waits n units.
func WithBackoff(d time.Duration) Option {
	return func(f *Forwarder) { f.backoff = d }
}

func NewForwarder(logger *slog.Logger, cfg config.FeedbackConfig, opts ...Option) *Forwarder {
	f := &Forwarder{
		logger:  logger,
		cfg:     cfg,
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		backoff: time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Forwarder) Enabled() bool {
	return f.cfg.Enabled()
}

type issue struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

// Send files fb as an issue. It returns e.ErrNotConfigured when the
// repository or token is missing.
func (f *Forwarder) Send(ctx context.Context, fb domain.FeedbackRequest) error {
	const op = "feedback.Forwarder.Send"

	if !f.Enabled() {
		return fmt.Errorf("%s: %w", op, e.ErrNotConfigured)
	}

	body, err := json.Marshal(issue{
		Title:  Title(fb.Message),
		Body:   Body(fb),
		Labels: f.cfg.Labels,
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/issues", f.baseURL, f.cfg.Owner, f.cfg.Repo)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return e.WrapError(ctx, op, ctx.Err())
		}

		retry, err := f.post(ctx, url, body)
		if err == nil {
			f.logger.Info("feedback issue created", slog.Int("attempt", attempt))
			return nil
		}
		lastErr = err

		f.logger.Warn("feedback forward failed",
			slog.Int("attempt", attempt),
			slog.String("reason", err.Error()),
		)

		if !retry || attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return e.WrapError(ctx, op, ctx.Err())
		case <-time.After(time.Duration(attempt) * f.backoff):
		}
	}

	return fmt.Errorf("%s: %v: %w", op, lastErr, e.ErrInternal)
}

// post reports whether a failed attempt is worth repeating.
func (f *Forwarder) post(ctx context.Context, url string, body []byte) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+f.cfg.Token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "realfoodfinder-feedback")
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return resp.StatusCode >= 500, fmt.Errorf("github issue create failed: %s: %s", resp.Status, strings.TrimSpace(string(detail)))
}

// Title builds "[Feedback] <preview>", cutting long messages to 67 runes plus "...".
func Title(message string) string {
	preview := message
	if r := []rune(message); len(r) > previewLimit {
		preview = strings.TrimSpace(string(r[:previewLimit-3])) + "..."
	}
	return "[Feedback] " + preview
}

func Body(fb domain.FeedbackRequest) string {
	lines := []string{
		"## Feedback",
		fb.Message,
		"",
		"## Meta",
		"- Page: " + orDefault(fb.Pathname, "unknown"),
		"- URL: " + orDefault(fb.PageURL, "unknown"),
		"- Contact: " + orDefault(fb.Email, "not provided"),
	}
	return strings.Join(lines, "\n")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
