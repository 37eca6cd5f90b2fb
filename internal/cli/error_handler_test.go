package cli

import (
	"fmt"
	"testing"

	"fieldtask/internal/errors"
	"fieldtask/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestErrorHandler_Handle(t *testing.T) {
	handler := NewErrorHandler()

	t.Run("validation error uses the friendly message", func(t *testing.T) {
		validationErr := validation.NewValidationError()
		validationErr.AddRequiredError("title", validation.MsgTitleRequired)

		err := handler.Handle("add task", validationErr)

		assert.EqualError(t, err, "failed to add task: "+validation.MsgTitleRequired)
	})

	t.Run("transport error uses the friendly message", func(t *testing.T) {
		transportErr := errors.NewTransportError("list tasks", fmt.Errorf("dial tcp: timeout"))

		err := handler.Handle("list tasks", transportErr)

		assert.Contains(t, err.Error(), "Could not reach the server")
	})

	t.Run("unauthorized error asks for a new sign in", func(t *testing.T) {
		err := handler.Handle("list tasks", errors.NewUnauthorizedError("list tasks"))

		assert.Contains(t, err.Error(), "sign in again")
	})

	t.Run("unknown error wraps", func(t *testing.T) {
		plain := fmt.Errorf("boom")

		err := handler.Handle("do thing", plain)

		assert.ErrorIs(t, err, plain)
	})
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	handler := NewErrorHandler()

	err := handler.HandleSimple(errors.NewTransportError("list tasks", fmt.Errorf("timeout")))

	assert.EqualError(t, err, "Could not reach the server. Please try again.")
}

func TestErrorHandler_Predicates(t *testing.T) {
	handler := NewErrorHandler()

	assert.True(t, handler.IsUnauthorizedError(errors.NewUnauthorizedError("op")))
	assert.True(t, handler.IsTransportError(errors.NewTransportError("op", fmt.Errorf("x"))))
	assert.True(t, handler.IsValidationError(errors.NewValidationError("bad", nil)))
	assert.False(t, handler.IsUnauthorizedError(fmt.Errorf("plain")))
}

func TestErrorHandler_GetErrorCode(t *testing.T) {
	handler := NewErrorHandler()

	assert.Equal(t, "UNAUTHORIZED", handler.GetErrorCode(errors.NewUnauthorizedError("op")))
}
