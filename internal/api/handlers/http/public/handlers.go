package public

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/internal/middleware"
	"github.com/earcherc/realfoodfinder/pkg/e"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Submitter interface {
	SubmitLocation(ctx context.Context, req domain.LocationSubmissionRequest, meta domain.ClientMeta) (*domain.Location, error)
	SubmitLink(ctx context.Context, req domain.LinkSubmissionRequest, meta domain.ClientMeta) (*domain.Link, error)
}

type Catalog interface {
	ApprovedLocations(ctx context.Context) ([]*domain.Location, error)
	ApprovedLinks(ctx context.Context) ([]*domain.Link, error)
}

type FeedbackSender interface {
	Submit(ctx context.Context, req domain.FeedbackRequest) error
}

type Handler struct {
	logger    *slog.Logger
	Submitter Submitter
	Catalog   Catalog
	Feedback  FeedbackSender
}

func NewHandler(logger *slog.Logger, submitter Submitter, catalog Catalog, feedback FeedbackSender) *Handler {
	return &Handler{
		logger:    logger,
		Submitter: submitter,
		Catalog:   catalog,
		Feedback:  feedback,
	}
}

func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Catalog.ApprovedLocations(r.Context())
	if err != nil {
		h.log(r).Error("list locations failed", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Could not load locations."})
		return
	}

	h.writeJSON(w, http.StatusOK, dataResponse{Data: locations})
}

func (h *Handler) SubmitLocation(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.LocationSubmissionRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		h.submitError(w, r, err, msgLocationFailed)
		return
	}

	created, err := h.Submitter.SubmitLocation(r.Context(), req, clientMeta(r))
	if err != nil {
		h.submitError(w, r, err, msgLocationFailed)
		return
	}

	l.Info("location submission stored", slog.Int64("id", created.ID))
	h.writeJSON(w, http.StatusCreated, submittedResponse{Message: "Location submitted for review.", Data: created})
}

func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.Catalog.ApprovedLinks(r.Context())
	if err != nil {
		h.log(r).Error("list links failed", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Could not load links."})
		return
	}

	h.writeJSON(w, http.StatusOK, dataResponse{Data: links})
}

func (h *Handler) SubmitLink(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.LinkSubmissionRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		h.submitError(w, r, err, msgLinkFailed)
		return
	}

	created, err := h.Submitter.SubmitLink(r.Context(), req, clientMeta(r))
	if err != nil {
		h.submitError(w, r, err, msgLinkFailed)
		return
	}

	l.Info("link submission stored", slog.Int64("id", created.ID))
	h.writeJSON(w, http.StatusCreated, submittedResponse{Message: "Link submitted for review.", Data: created})
}

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.FeedbackRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: publicMessage(err, "Invalid feedback payload.")})
		return
	}

	err := h.Feedback.Submit(r.Context(), req)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, messageResponse{Message: "Feedback submitted."})
	case errors.Is(err, e.ErrNotConfigured):
		h.writeJSON(w, http.StatusServiceUnavailable, messageResponse{Message: "Feedback integration is not configured yet."})
	case errors.Is(err, e.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: publicMessage(err, "Invalid feedback payload.")})
	default:
		l.Error("feedback forward failed", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Could not send feedback."})
	}
}

func clientMeta(r *http.Request) domain.ClientMeta {
	return domain.ClientMeta{RemoteIP: middleware.ClientIP(r)}
}
