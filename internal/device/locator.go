package device

import (
	"context"

	"fieldtask/internal/errors"
)

// StaticLocator is a Locator backed by a configured position. A nil
// position models the user never granting location access.
type StaticLocator struct {
	pos *Position
}

// NewStaticLocator creates a locator for the given position. Pass nil
// to model denied location access.
func NewStaticLocator(pos *Position) *StaticLocator {
	return &StaticLocator{pos: pos}
}

// CurrentPosition returns the configured position or a permission
// denial when none is configured.
func (l *StaticLocator) CurrentPosition(ctx context.Context) (Position, error) {
	if l.pos == nil {
		return Position{}, errors.NewPermissionError("location", "no position configured")
	}
	return *l.pos, nil
}
