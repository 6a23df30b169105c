package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KindAndMessage(t *testing.T) {
	err := New(ErrConflict, "Username %s is already taken!", "alice")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "Username alice is already taken!", err.Error())
	assert.True(t, Public(err))
}

func TestMessage_WrappedAndInternal(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", New(ErrValidation, "Request body incomplete."))
	assert.Equal(t, "Request body incomplete.", Message(wrapped))
	assert.True(t, errors.Is(wrapped, ErrValidation))

	driver := errors.New("dial tcp 10.0.0.1:5432: connection refused")
	assert.Equal(t, InternalMessage, Message(driver))
	assert.False(t, Public(driver))
}
