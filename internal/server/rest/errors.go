package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/technotes/internal/server/services"
)

// statusOf maps a service error to its HTTP status and client message.
// Unexpected failures never expose their text.
func statusOf(err error) (int, string) {
	var (
		ve *services.ValidationError
		nf *services.NotFoundError
		ce *services.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Message
	case errors.As(err, &ce):
		return http.StatusConflict, ce.Message
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
