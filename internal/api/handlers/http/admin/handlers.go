package admin

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/internal/render"

	chimw "github.com/go-chi/chi/v5/middleware"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Moderator interface {
	Dashboard(ctx context.Context, key string) (*domain.Dashboard, error)
	UpdateLocationStatus(ctx context.Context, key, rawID, rawStatus string) (*domain.Location, error)
	UpdateLinkStatus(ctx context.Context, key, rawID, rawStatus string) (*domain.Link, error)
}

type Handler struct {
	logger    *slog.Logger
	Moderator Moderator
	renderer  *render.Renderer
}

func NewHandler(logger *slog.Logger, moderator Moderator, renderer *render.Renderer) *Handler {
	return &Handler{
		logger:    logger,
		Moderator: moderator,
		renderer:  renderer,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

// AdminDashboard lists every submission, whatever its status.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	h.renderDashboard(w, r, http.StatusOK, key, dashboardView{})
}

func (h *Handler) AdminLocationStatus(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	if err := r.ParseForm(); err != nil {
		l.Warn("invalid form", slog.String("error", err.Error()))
		h.render(w, r, http.StatusBadRequest, "error", "Invalid form submission.")
		return
	}
	key := r.PostForm.Get("adminKey")

	updated, err := h.Moderator.UpdateLocationStatus(r.Context(), key, r.PostForm.Get("id"), r.PostForm.Get("status"))
	if err != nil {
		h.handleError(w, r, key, "location", err)
		return
	}

	l.Info("location status updated", slog.Int64("id", updated.ID), slog.String("status", updated.Status.String()))
	h.renderDashboard(w, r, http.StatusOK, key, dashboardView{
		Flash: fmt.Sprintf("%s marked %s.", updated.Name, statusLabel(updated.Status)),
	})
}

func (h *Handler) AdminLinkStatus(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	if err := r.ParseForm(); err != nil {
		l.Warn("invalid form", slog.String("error", err.Error()))
		h.render(w, r, http.StatusBadRequest, "error", "Invalid form submission.")
		return
	}
	key := r.PostForm.Get("adminKey")

	updated, err := h.Moderator.UpdateLinkStatus(r.Context(), key, r.PostForm.Get("id"), r.PostForm.Get("status"))
	if err != nil {
		h.handleError(w, r, key, "link", err)
		return
	}

	l.Info("link status updated", slog.Int64("id", updated.ID), slog.String("status", updated.Status.String()))
	h.renderDashboard(w, r, http.StatusOK, key, dashboardView{
		Flash: fmt.Sprintf("%s marked %s.", updated.Title, statusLabel(updated.Status)),
	})
}
