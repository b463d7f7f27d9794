package captcha

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/earcherc/realfoodfinder/internal/config"

	"github.com/google/uuid"
)

type Turnstile struct {
	secret        string
	verifyURL     string
	expectedHosts []string
	http          *http.Client
	logger        *slog.Logger
}

func NewTurnstile(cfg config.TurnstileConfig, client *http.Client, logger *slog.Logger) *Turnstile {
	hosts := make([]string, 0, len(cfg.ExpectedHosts))
	for _, h := range cfg.ExpectedHosts {
		hosts = append(hosts, strings.ToLower(h))
	}
	return &Turnstile{
		secret:        cfg.SecretKey,
		verifyURL:     cfg.VerifyURL,
		expectedHosts: hosts,
		http:          client,
		logger:        logger,
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
	Hostname   string   `json:"hostname"`
	Action     string   `json:"action"`
}

func (t *Turnstile) Verify(ctx context.Context, req Request) Verdict {
	const op = "captcha.Turnstile.Verify"

	if strings.TrimSpace(req.Token) == "" {
		return Verdict{Message: MsgMissingToken}
	}

	form := url.Values{}
	form.Set("secret", t.secret)
	form.Set("response", req.Token)
	if req.RemoteIP != "" {
		form.Set("remoteip", req.RemoteIP)
	}
	form.Set("idempotency_key", uuid.NewString())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		t.logger.Error("create siteverify request failed", slog.String("op", op), slog.String("error", err.Error()))
		return Verdict{Message: MsgFailed}
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.http.Do(httpReq)
	if err != nil {
		t.logger.Warn("siteverify request failed", slog.String("op", op), slog.String("error", err.Error()))
		return Verdict{Message: MsgFailed}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		t.logger.Warn("siteverify rejected request", slog.String("op", op), slog.String("status", resp.Status))
		return Verdict{Message: MsgFailed}
	}

	var data siteverifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&data); err != nil {
		t.logger.Warn("siteverify response unreadable", slog.String("op", op), slog.String("error", err.Error()))
		return Verdict{Message: MsgFailed}
	}

	if !data.Success {
		t.logger.Info("captcha rejected", slog.String("op", op), slog.Any("error_codes", data.ErrorCodes))
		return Verdict{Message: MsgUnsuccessful}
	}

	if req.Action != "" && data.Action != "" && data.Action != req.Action {
		t.logger.Info("captcha action mismatch", slog.String("op", op),
			slog.String("expected", req.Action), slog.String("got", data.Action))
		return Verdict{Message: MsgUnsuccessful}
	}

	if len(t.expectedHosts) > 0 && !slices.Contains(t.expectedHosts, strings.ToLower(data.Hostname)) {
		t.logger.Info("captcha hostname mismatch", slog.String("op", op), slog.String("hostname", data.Hostname))
		return Verdict{Message: MsgUnsuccessful}
	}

	return Verdict{OK: true}
}
