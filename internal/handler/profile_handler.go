package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/observability"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/service"
)

const headerCache = "X-Cache"

// ProfileHandler exposes the user profile endpoint.
type ProfileHandler struct{ S *service.ProfileService }

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(s *service.ProfileService) *ProfileHandler { return &ProfileHandler{s} }

// Get returns the reshaped profile of the user named in the path.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	res, err := h.S.Get(r.Context(), username)
	if err != nil {
		status, msg := mapError(err)
		if status >= http.StatusInternalServerError {
			observability.GetLogger(r.Context()).Error("profile request failed",
				zap.String("username", username), zap.Error(err))
		}
		writeError(w, r, status, msg)
		return
	}

	if res.Cached {
		w.Header().Set(headerCache, "HIT")
	} else {
		w.Header().Set(headerCache, "MISS")
	}
	writeJSON(w, r, http.StatusOK, res.Profile)
}
