package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   NotFound(),
			expected: "NOT_FOUND: Not Found",
		},
		{
			name:     "with underlying error",
			appErr:   Internal(errors.New("connection refused")),
			expected: "INTERNAL_ERROR: Internal Server Error (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, KindInternal, "wrapped")

	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("get booking: %w", Conflict("Unable to book"))

	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, KindForbidden, KindOf(Forbidden()))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.True(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestAs(t *testing.T) {
	appErr, ok := As(fmt.Errorf("outer: %w", NotFound()))
	assert.True(t, ok)
	assert.Equal(t, MsgNotFound, appErr.Message)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}
