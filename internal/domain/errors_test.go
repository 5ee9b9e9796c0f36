package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("something is off")
	assert.Equal(t, "validation error: something is off", err.Error())

	err = NewFieldValidationError("title", "is required")
	assert.Equal(t, "validation error: title: is required", err.Error())

	var ve ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)
}

func TestPermissionError(t *testing.T) {
	err := NewPermissionError(AccessTriage, "triage access required")
	assert.Equal(t, "triage access required", err.Error())
	assert.Equal(t, AccessTriage, err.Required)

	var pe *PermissionError
	assert.True(t, errors.As(err, &pe))

	assert.Equal(t, "Access denied", ErrAccessDenied.Error())
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("tracker name already in use")
	assert.Equal(t, "tracker name already in use", err.Error())
}

func TestImportError(t *testing.T) {
	cause := errors.New("boom")
	err := &ImportError{Tracker: "~alice/bugs", Ticket: 4, Reason: "missing subject", Err: cause}
	assert.Contains(t, err.Error(), "~alice/bugs#4")
	assert.Contains(t, err.Error(), "missing subject")
	assert.ErrorIs(t, err, cause)

	err = &ImportError{Tracker: "~alice/bugs", Ticket: 4, Reason: "missing subject"}
	assert.Equal(t, "import failed [~alice/bugs#4]: missing subject", err.Error())
}
