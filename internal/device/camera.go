package device

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"fieldtask/internal/errors"
	"fieldtask/internal/logging"
)

// CaptureLibrary owns the managed directory of locally captured photos.
// Captures are copied in under generated names; Release removes a
// managed capture and ignores anything outside the directory.
type CaptureLibrary struct {
	dir string
}

// NewCaptureLibrary creates a capture library rooted at dir.
func NewCaptureLibrary(dir string) *CaptureLibrary {
	return &CaptureLibrary{dir: dir}
}

// Dir returns the managed capture directory.
func (l *CaptureLibrary) Dir() string {
	return l.dir
}

// Ingest copies a source image into the managed directory and returns
// the new device-local reference.
func (l *CaptureLibrary) Ingest(ctx context.Context, source string) (string, error) {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return "", errors.NewStorageError("create capture directory", err)
	}

	in, err := os.Open(source)
	if err != nil {
		return "", errors.NewPermissionError("camera", fmt.Sprintf("cannot read %s", source))
	}
	defer in.Close()

	ext := filepath.Ext(source)
	if ext == "" {
		ext = ".jpg"
	}
	dest := filepath.Join(l.dir, uuid.NewString()+ext)

	out, err := os.Create(dest)
	if err != nil {
		return "", errors.NewStorageError("create capture file", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dest)
		return "", errors.NewStorageError("copy capture", err)
	}

	logging.Debugf("captured %s -> %s\n", source, dest)
	return dest, nil
}

// Release removes a managed capture file. References outside the
// managed directory (remote URLs, user files) are left alone.
func (l *CaptureLibrary) Release(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	absDir, err := filepath.Abs(l.dir)
	if err != nil {
		return nil
	}
	absRef, err := filepath.Abs(ref)
	if err != nil {
		return nil
	}
	if !strings.HasPrefix(absRef, absDir+string(filepath.Separator)) {
		return nil
	}
	if err := os.Remove(absRef); err != nil && !os.IsNotExist(err) {
		return errors.NewStorageError("release capture", err)
	}
	return nil
}

// FileCamera is a Camera that ingests a photo file chosen per
// invocation, standing in for a device camera on a workstation client.
type FileCamera struct {
	library *CaptureLibrary
	source  string
}

// NewFileCamera creates a camera over the given library. An empty
// source means the user declined to choose a photo: Capture reports a
// canceled capture.
func NewFileCamera(library *CaptureLibrary, source string) *FileCamera {
	return &FileCamera{
		library: library,
		source:  source,
	}
}

// Capture ingests the configured source file and returns the managed
// device-local reference.
func (c *FileCamera) Capture(ctx context.Context) (string, error) {
	if c.source == "" {
		return "", ErrCaptureCanceled
	}
	return c.library.Ingest(ctx, c.source)
}
