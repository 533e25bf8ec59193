package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/careerkit/cvforge/internal/joboffer"
)

// notFoundError indicates a referenced resource does not exist
type notFoundError struct {
	resource string
	id       string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.resource, e.id)
}

// statusFor maps an error from the request fan-out to an HTTP status
func statusFor(err error) int {
	var notFound *notFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	var fetch *joboffer.Error
	if errors.As(err, &fetch) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
