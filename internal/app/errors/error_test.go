package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		err        *AppError
		statusCode int
	}{
		{NewBadRequestError("bad"), http.StatusBadRequest},
		{NewUnauthorizedError(), http.StatusUnauthorized},
		{NewUnauthorizedError("custom"), http.StatusUnauthorized},
		{NewForbiddenError(), http.StatusForbidden},
		{NewNotFoundError("missing"), http.StatusNotFound},
		{NewConflictError("race"), http.StatusConflict},
		{NewTooManyRequestsError("slow down"), http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.statusCode, tt.err.StatusCode)
		assert.Equal(t, tt.err.Message, tt.err.Error())
	}
}

func TestUnauthorizedDefaultMessage(t *testing.T) {
	assert.Equal(t, "Unauthorized", NewUnauthorizedError().Message)
	assert.Equal(t, "custom", NewUnauthorizedError("custom").Message)
}

func TestAppErrorUnwrapsWithErrorsAs(t *testing.T) {
	var appErr *AppError
	wrapped := fmt.Errorf("handler: %w", NewConflictError("race"))

	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
}
