// Package captcha verifies Turnstile challenge tokens sent with submissions.
package captcha

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/earcherc/realfoodfinder/internal/config"
)

const (
	ActionSubmitLocation = "submit_location"
	ActionSubmitLink     = "submit_link"
)

const (
	MsgNotConfigured = "Captcha is not configured."
	MsgMissingToken  = "Captcha token is missing."
	MsgFailed        = "Captcha verification failed."
	MsgUnsuccessful  = "Captcha verification was unsuccessful."
)

type Request struct {
	Token    string
	RemoteIP string
	Action   string
}

// Verdict is the outcome of a verification. Message is set when OK is false.
type Verdict struct {
	OK      bool
	Message string
}

type Verifier interface {
	Verify(ctx context.Context, req Request) Verdict
}

// New selects a verifier for the configured secret. Without a secret,
// production refuses every submission and other environments let them through.
func New(cfg config.TurnstileConfig, production bool, logger *slog.Logger) Verifier {
	if cfg.SecretKey == "" {
		if production {
			logger.Error("TURNSTILE_SECRET_KEY is not set, all submissions will be refused")
			return Unconfigured{}
		}
		logger.Warn("TURNSTILE_SECRET_KEY is not set, captcha checks are bypassed")
		return Bypass{}
	}
	return NewTurnstile(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

type Bypass struct{}

func (Bypass) Verify(context.Context, Request) Verdict {
	return Verdict{OK: true}
}

type Unconfigured struct{}

func (Unconfigured) Verify(context.Context, Request) Verdict {
	return Verdict{Message: MsgNotConfigured}
}
