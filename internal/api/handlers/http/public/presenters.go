package public

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/earcherc/realfoodfinder/pkg/e"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	msgLocationFailed = "Could not submit location. Please try again."
	msgLinkFailed     = "Could not submit link. Please try again."
)

type messageResponse struct {
	Message string `json:"message"`
}

type dataResponse struct {
	Data any `json:"data"`
}

type submittedResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// submitError answers every failed submission with 400. Only validation,
// captcha and geocode errors reveal their own text.
func (h *Handler) submitError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	msg, ok := e.PublicMessage(err)
	if !ok {
		h.log(r).Error("submission failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		msg = fallback
	}
	h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: msg})
}

func publicMessage(err error, fallback string) string {
	if msg, ok := e.PublicMessage(err); ok {
		return msg
	}
	return fallback
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
