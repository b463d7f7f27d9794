package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
)

const msgInvalidKey = "Invalid admin key."

type dashboardView struct {
	Key       string
	Flash     string
	Error     string
	Dashboard *domain.Dashboard
}

type loginView struct {
	Error string
}

// handleError maps a failed status change to a page. kind names the record
// ("location" or "link") in messages.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, key, kind string, err error) {
	l := h.log(r)

	var ve *e.ValidationError
	switch {
	case errors.Is(err, e.ErrUnauthorized):
		l.Warn("moderation rejected: bad admin key", slog.String("path", r.URL.Path))
		h.render(w, r, http.StatusUnauthorized, "login", loginView{Error: msgInvalidKey})
	case errors.As(err, &ve):
		msg := ve.Message
		if ve.Field == "id" {
			msg = "Invalid " + kind + " id."
		}
		h.renderDashboard(w, r, http.StatusBadRequest, key, dashboardView{Error: msg})
	case errors.Is(err, e.ErrNotFound):
		h.renderDashboard(w, r, http.StatusNotFound, key, dashboardView{Error: "That " + kind + " no longer exists."})
	default:
		l.Error("handler error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		h.render(w, r, http.StatusInternalServerError, "error", "Could not update the submission. Please try again.")
	}
}

// renderDashboard loads the dashboard for key and renders it with status.
// A rejected key shows the login form instead.
func (h *Handler) renderDashboard(w http.ResponseWriter, r *http.Request, status int, key string, view dashboardView) {
	d, err := h.Moderator.Dashboard(r.Context(), key)
	if err != nil {
		if errors.Is(err, e.ErrUnauthorized) {
			lv := loginView{}
			if key != "" {
				lv.Error = msgInvalidKey
			}
			h.render(w, r, http.StatusUnauthorized, "login", lv)
			return
		}
		h.log(r).Error("load dashboard failed", slog.Any("error", err))
		h.render(w, r, http.StatusInternalServerError, "error", "Could not load submissions.")
		return
	}

	view.Key = key
	view.Dashboard = d
	h.render(w, r, status, "dashboard", view)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := h.renderer.Render(w, status, name, data); err != nil {
		h.log(r).Error("render failed", slog.String("template", name), slog.Any("error", err))
	}
}

func statusLabel(s domain.Status) string {
	return domain.Label(domain.Statuses, string(s))
}
