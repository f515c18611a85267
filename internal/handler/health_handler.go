package handler

import (
	"net/http"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/observability"
)

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }
}

func Ready(p observability.Pinger) http.HandlerFunc {
	return observability.HealthReadyHandler(p)
}
