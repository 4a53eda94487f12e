//go:build unit
// +build unit

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("cosmos unavailable")
	err := Wrap(cause, ErrUnavailable, "store is down")

	require.NotNil(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store is down", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, Status(err))
	assert.Equal(t, "", ErrUnavailable.Message, "base must not be mutated")
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "ignored"))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"typed", WithMessage(ErrNotFound, "Resume not found"), http.StatusNotFound},
		{"wrapped typed", fmt.Errorf("get: %w", WithMessage(ErrForbidden, "Invalid admin key")), http.StatusForbidden},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
		{"zero status", &Error{Code: "x"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Invalid admin key", Message(WithMessage(ErrForbidden, "Invalid admin key")))
	assert.Equal(t, "boom", Message(Wrap(errors.New("boom"), ErrInternal, "")))
	assert.Equal(t, "not_found", Message(ErrNotFound))
	assert.Equal(t, "plain", Message(errors.New("plain")))
	assert.Equal(t, "", Message(nil))
}
