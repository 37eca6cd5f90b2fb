package validation

import (
	"fieldtask/internal/config"
	"fieldtask/internal/domain"
)

// DraftField identifies which part of a task draft failed validation.
// Callers use it to direct input focus back to the offending field.
type DraftField string

const (
	FieldNone     DraftField = ""
	FieldTitle    DraftField = "title"
	FieldPhoto    DraftField = "photo"
	FieldLocation DraftField = "location"
	FieldSession  DraftField = "session"
)

// User-facing messages for the ordered submit checks.
const (
	MsgTitleRequired    = "The title is required."
	MsgPhotoRequired    = "Take a photo first."
	MsgLocationRequired = "Capture the location first."
	MsgSessionInvalid   = "Session invalid. Sign in again."
)

// DraftValidator provides validation for task draft submission
type DraftValidator struct {
	validator *Validator
}

// NewDraftValidator creates a new draft validator
func NewDraftValidator() *DraftValidator {
	return &DraftValidator{
		validator: NewValidator(),
	}
}

// NewDraftValidatorWithConfig creates a new draft validator with configuration
func NewDraftValidatorWithConfig(cfg *config.Config) *DraftValidator {
	return &DraftValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateForSubmit runs the ordered submit checks against a draft.
// The first failure wins: title non-empty (and within limits), photo
// reference present, location name non-empty (and within limits), and
// finally a resolvable authenticated identity. Returns the failing
// field and a ValidationError, or FieldNone and nil on success.
func (dv *DraftValidator) ValidateForSubmit(draft domain.TaskDraft, authenticated bool) (DraftField, error) {
	if !dv.validator.IsNonEmptyString(draft.Title) {
		return FieldTitle, requiredError("title", MsgTitleRequired)
	}
	if !dv.validator.IsWithinMaxLength(draft.Title, dv.validator.TitleMaxLength()) {
		return FieldTitle, lengthError("title", draft.Title, dv.validator.TitleMaxLength())
	}
	if !dv.validator.IsWithinMaxLength(draft.Description, dv.validator.DescriptionMaxLength()) {
		return FieldNone, lengthError("description", draft.Description, dv.validator.DescriptionMaxLength())
	}

	if draft.PhotoRef == "" {
		return FieldPhoto, requiredError("photo", MsgPhotoRequired)
	}

	if !dv.validator.IsNonEmptyString(draft.LocationName) {
		return FieldLocation, requiredError("location", MsgLocationRequired)
	}
	if !dv.validator.IsWithinMaxLength(draft.LocationName, dv.validator.LocationMaxLength()) {
		return FieldLocation, lengthError("location", draft.LocationName, dv.validator.LocationMaxLength())
	}

	if !authenticated {
		return FieldSession, sessionError()
	}

	return FieldNone, nil
}

func requiredError(field string, message string) *ValidationError {
	validationError := NewValidationError()
	validationError.AddRequiredError(field, message)
	return validationError
}

func lengthError(field string, value string, max int) *ValidationError {
	validationError := NewValidationError()
	validationError.AddInvalidLengthError(field, value, max)
	return validationError
}

func sessionError() *ValidationError {
	validationError := NewValidationError()
	validationError.AddInvalidValueError("session", nil, MsgSessionInvalid)
	return validationError
}
