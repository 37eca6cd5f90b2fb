package cli

import (
	"context"
	"testing"
	"time"

	"fieldtask/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestApp_Run(t *testing.T) {
	t.Run("whoami through the root command", func(t *testing.T) {
		// Arrange
		f := newAppFixture()
		f.session.user = &domain.User{Name: "Maria", Email: "maria@example.com"}
		f.session.authenticated = true

		// Act
		err := f.app.Run(context.Background(), []string{"whoami"})

		// Assert
		assert.NoError(t, err)
		assert.Contains(t, f.out.String(), "Signed in as Maria <maria@example.com>")
	})

	t.Run("list flags reach the handler", func(t *testing.T) {
		// Arrange
		f := newAppFixture()
		f.tasks.tasks = []domain.Task{
			{ID: "1", Title: "Comprar pan", Completed: true},
			{ID: "2", Title: "Visitar la biblioteca", Completed: false},
		}

		// Act
		err := f.app.Run(context.Background(), []string{"list", "--filter", "completed"})

		// Assert
		assert.NoError(t, err)
		assert.Contains(t, f.out.String(), "Comprar pan")
		assert.NotContains(t, f.out.String(), "biblioteca")
	})

	t.Run("add flags reach the handler", func(t *testing.T) {
		// Arrange
		f := newAppFixture()

		// Act
		err := f.app.Run(context.Background(), []string{
			"add", "-t", "Inspect the pump", "--photo", "pump.jpg", "-l", "Planta Norte",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "Inspect the pump", f.form.title)
		assert.Equal(t, "pump.jpg", f.lastPhotoSource)
		assert.Equal(t, "Planta Norte", f.form.location)
	})

	t.Run("unknown command fails", func(t *testing.T) {
		// Arrange
		f := newAppFixture()

		// Act
		err := f.app.Run(context.Background(), []string{"frobnicate"})

		// Assert
		assert.Error(t, err)
	})

	t.Run("global flags override configuration", func(t *testing.T) {
		// Arrange
		f := newAppFixture()

		// Act
		err := f.app.Run(context.Background(), []string{
			"--app-timeout", "5s", "--position", "-33.45,-70.66", "whoami",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 5*time.Second, f.app.config.Application.Timeout)
		assert.True(t, f.app.config.Capture.HasPosition)
		assert.InDelta(t, -33.45, f.app.config.Capture.Latitude, 0.001)
	})
}
