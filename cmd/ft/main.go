package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"fieldtask/internal/cli"
	"fieldtask/internal/config"
	"fieldtask/internal/device"
	"fieldtask/internal/form"
	"fieldtask/internal/repository/sqlite"
	"fieldtask/internal/session"
	"fieldtask/internal/tasks"
	"fieldtask/internal/transport"
	"fieldtask/internal/validation"
)

func main() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Create keystore based on environment
	factory := NewKeystoreFactory(GetEnvironment(), cfg)
	keystore, err := factory.CreateKeystore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating keystore: %v\n", err)
		os.Exit(1)
	}
	defer keystore.Close()

	httpClient := &http.Client{Timeout: cfg.API.RequestTimeout}
	client := transport.NewClient(cfg.API.BaseURL, sqlite.NewTokenSource(keystore), httpClient)
	client.UseMultipart(cfg.API.Multipart)

	library := device.NewCaptureLibrary(cfg.Capture.Dir)
	geocoder := device.NewHTTPGeocoder(cfg.API.GeocodeURL, httpClient)

	sessionStore := session.NewStore(client, keystore)
	taskStore := tasks.NewStore(client, library)
	validator := validation.NewDraftValidatorWithConfig(cfg)

	// Each add or edit invocation gets a form bound to its own photo
	// source and position override.
	forms := func(photoSource string, position *device.Position) cli.FormAPI {
		if position == nil && cfg.Capture.HasPosition {
			position = &device.Position{
				Latitude:  cfg.Capture.Latitude,
				Longitude: cfg.Capture.Longitude,
			}
		}
		camera := device.NewFileCamera(library, photoSource)
		locator := device.NewStaticLocator(position)
		return form.NewController(taskStore, sessionStore, camera, locator, geocoder, validator)
	}

	app := cli.NewApp(cfg, sessionStore, taskStore, forms)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Application.Timeout)
	defer cancel()

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
