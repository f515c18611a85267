package handler

import (
	"errors"
	"net/http"

	"github.com/SARVESHVARADKAR123/leetproxy/internal/model"
	"github.com/SARVESHVARADKAR123/leetproxy/internal/upstream"
)

const (
	msgInvalidUsername = "Invalid username."
	msgNotFound        = "Could not fetch user data. Maybe invalid username or blocked request."
	msgUnavailable     = "Could not reach LeetCode. Please try again later."
	msgBadStatus       = "LeetCode returned an unexpected response."
	msgMalformed       = "LeetCode returned a malformed response."
	msgInternal        = "An unexpected error occurred."
)

// mapError converts a service error into an HTTP status and client message.
func mapError(err error) (int, string) {
	if errors.Is(err, model.ErrInvalidUsername) {
		return http.StatusBadRequest, msgInvalidUsername
	}

	switch upstream.KindOf(err) {
	case upstream.KindNotFound:
		return http.StatusBadRequest, msgNotFound
	case upstream.KindNetwork:
		return http.StatusInternalServerError, msgUnavailable
	case upstream.KindStatus:
		return http.StatusInternalServerError, msgBadStatus
	case upstream.KindParse:
		return http.StatusInternalServerError, msgMalformed
	default:
		return http.StatusInternalServerError, msgInternal
	}
}
