// Package form drives the task draft through capture, detection, and
// submission. The controller owns one draft at a time and guards each
// device interaction and the submit against re-entry.
package form

import (
	"context"
	"errors"
	"sync"

	"fieldtask/internal/device"
	"fieldtask/internal/domain"
	"fieldtask/internal/logging"
	"fieldtask/internal/validation"
)

// MsgSaveFailed is shown when the backend rejects an otherwise valid
// draft. Field values are preserved so the user can retry.
const MsgSaveFailed = "Could not save the task. Please try again."

// TaskWriter is the slice of the task store the controller mutates
// through. Satisfied by the tasks store.
type TaskWriter interface {
	Add(ctx context.Context, draft domain.TaskDraft) bool
	Update(ctx context.Context, id string, draft domain.TaskDraft) bool
	LastError() error
}

// Session reports whether a session is held. Satisfied by the session
// store.
type Session interface {
	Authenticated() bool
}

// Controller holds the draft state machine
type Controller struct {
	mu sync.Mutex

	writer    TaskWriter
	session   Session
	camera    device.Camera
	locator   device.Locator
	geocoder  device.Geocoder
	validator *validation.DraftValidator

	draft      domain.TaskDraft
	editingID  string
	focus      validation.DraftField
	errMessage string

	capturing  bool
	detecting  bool
	submitting bool
}

// NewController creates a draft controller. The validator falls back
// to default limits when nil.
func NewController(writer TaskWriter, session Session, camera device.Camera, locator device.Locator, geocoder device.Geocoder, validator *validation.DraftValidator) *Controller {
	if validator == nil {
		validator = validation.NewDraftValidator()
	}
	return &Controller{
		writer:    writer,
		session:   session,
		camera:    camera,
		locator:   locator,
		geocoder:  geocoder,
		validator: validator,
		focus:     validation.FieldTitle,
	}
}

// SetTitle updates the draft title
func (c *Controller) SetTitle(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Title = title
}

// SetDescription updates the draft description
func (c *Controller) SetDescription(description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Description = description
}

// SetLocationName updates the draft location by hand, bypassing
// detection.
func (c *Controller) SetLocationName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.LocationName = name
}

// StartEdit seeds the draft from an existing task. The photo is left
// empty: an edit must capture it again. The seed is a one-time
// snapshot; later changes to the task do not reseed the draft.
func (c *Controller) StartEdit(task domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = domain.TaskDraft{
		Title:        task.Title,
		Description:  task.Description,
		LocationName: task.LocationName,
	}
	c.editingID = task.ID
	c.errMessage = ""
	c.focus = validation.FieldTitle
}

// Editing returns the id of the task under edit, or empty for a new
// draft.
func (c *Controller) Editing() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// Reset clears the draft, the edit target, and any error
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Cancel abandons the draft. Alias of Reset, kept for call sites that
// read better with it.
func (c *Controller) Cancel() {
	c.Reset()
}

func (c *Controller) reset() {
	c.draft = domain.TaskDraft{}
	c.editingID = ""
	c.errMessage = ""
	c.focus = validation.FieldTitle
}

// CapturePhoto asks the camera for a photo and stores its reference in
// the draft. A canceled capture leaves the draft unchanged without an
// error. Re-entrant calls while a capture is in flight are ignored.
func (c *Controller) CapturePhoto(ctx context.Context) bool {
	c.mu.Lock()
	if c.capturing {
		c.mu.Unlock()
		return false
	}
	c.capturing = true
	c.errMessage = ""
	c.mu.Unlock()

	ref, err := c.camera.Capture(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.capturing = false

	if errors.Is(err, device.ErrCaptureCanceled) {
		return false
	}
	if err != nil {
		logging.Debugf("capture failed: %v", err)
		c.errMessage = "Could not access the camera."
		return false
	}
	c.draft.PhotoRef = ref
	return true
}

// RemovePhoto clears the draft's photo reference
func (c *Controller) RemovePhoto() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.PhotoRef = ""
}

// DetectLocation resolves the current position to a location name. A
// position that cannot be named still counts as detected and gets the
// fallback name. Re-entrant calls while detection is in flight are
// ignored.
func (c *Controller) DetectLocation(ctx context.Context) bool {
	c.mu.Lock()
	if c.detecting {
		c.mu.Unlock()
		return false
	}
	c.detecting = true
	c.errMessage = ""
	c.mu.Unlock()

	name, err := c.detect(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.detecting = false

	if err != nil {
		logging.Debugf("location detection failed: %v", err)
		c.errMessage = "Could not detect the location."
		return false
	}
	c.draft.LocationName = name
	return true
}

// detect resolves the position to a name. Only the position fetch can
// fail detection; a failed reverse geocode still counts as detected
// and gets the fallback name, same as a position nothing can name.
func (c *Controller) detect(ctx context.Context) (string, error) {
	pos, err := c.locator.CurrentPosition(ctx)
	if err != nil {
		return "", err
	}
	addr, err := c.geocoder.ReverseGeocode(ctx, pos)
	if err != nil {
		logging.Debugf("reverse geocode failed: %v", err)
		return ComposeLocationName(nil), nil
	}
	return ComposeLocationName(addr), nil
}

// Submit validates the draft and sends it to the backend: a create for
// a new draft, an update when a task is under edit. On success the
// draft resets; on a backend failure the fields are preserved so the
// user can retry. A second Submit while one is in flight is ignored.
func (c *Controller) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return false
	}
	c.submitting = true
	draft := c.draft.Trimmed()
	editingID := c.editingID
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	if field, err := c.validator.ValidateForSubmit(draft, c.session.Authenticated()); err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.focus = field
		c.errMessage = validationMessage(err)
		return false
	}

	var saved bool
	if editingID != "" {
		saved = c.writer.Update(ctx, editingID, draft)
	} else {
		saved = c.writer.Add(ctx, draft)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !saved {
		logging.Debugf("draft save failed: %v", c.writer.LastError())
		c.errMessage = MsgSaveFailed
		return false
	}
	c.reset()
	return true
}

func validationMessage(err error) string {
	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.GetUserFriendlyMessage()
	}
	return err.Error()
}

// Draft returns a copy of the current draft
func (c *Controller) Draft() domain.TaskDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Focus returns the field that should receive attention next, set by
// the most recent validation failure.
func (c *Controller) Focus() validation.DraftField {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

// ErrorMessage returns the message from the most recent failure, or
// empty.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMessage
}

// Busy reports whether a capture, detection, or submit is in flight
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capturing || c.detecting || c.submitting
}
