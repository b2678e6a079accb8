package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorKinds(t *testing.T) {
	sentinel := Unprocessable("checkIn and checkOut are required")
	wrapped := fmt.Errorf("next step: %w", sentinel)

	assert.True(t, errors.Is(wrapped, ErrUnprocessable))
	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, ErrBadRequest))

	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "checkIn and checkOut are required", appErr.Message)
}

func TestBadRequestFormats(t *testing.T) {
	err := BadRequest("at most %d images", 10)
	assert.EqualError(t, err, "at most 10 images")
	assert.ErrorIs(t, err, ErrBadRequest)
}
