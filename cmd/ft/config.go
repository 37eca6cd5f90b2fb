package main

import (
	"fmt"
	"os"

	"fieldtask/internal/config"
	"fieldtask/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// KeystoreFactory creates keystore instances based on environment
type KeystoreFactory struct {
	env Environment
	cfg *config.Config
}

// NewKeystoreFactory creates a new keystore factory for the given environment
func NewKeystoreFactory(env Environment, cfg *config.Config) *KeystoreFactory {
	return &KeystoreFactory{env: env, cfg: cfg}
}

// CreateKeystore creates a keystore instance based on the current environment
func (kf *KeystoreFactory) CreateKeystore() (sqlite.Keystore, error) {
	switch kf.env {
	case Development:
		return kf.createDevelopmentKeystore()
	case Testing:
		return kf.createTestingKeystore()
	case Production:
		return kf.createProductionKeystore()
	default:
		return kf.createProductionKeystore()
	}
}

// createDevelopmentKeystore uses a local database file in the working
// directory.
func (kf *KeystoreFactory) createDevelopmentKeystore() (sqlite.Keystore, error) {
	store, err := sqlite.New("ft.db")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development keystore: %w", err)
	}
	return store, nil
}

// createTestingKeystore uses an in-memory database
func (kf *KeystoreFactory) createTestingKeystore() (sqlite.Keystore, error) {
	store, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize testing keystore: %w", err)
	}
	return store, nil
}

// createProductionKeystore uses the configured keystore location
func (kf *KeystoreFactory) createProductionKeystore() (sqlite.Keystore, error) {
	if err := os.MkdirAll(kf.cfg.Keystore.Dir, os.FileMode(kf.cfg.Keystore.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create keystore directory: %w", err)
	}

	store, err := sqlite.NewWithTimeouts(kf.cfg.GetKeystorePath(), kf.cfg.GetQueryTimeout(), kf.cfg.GetWriteTimeout())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keystore: %w", err)
	}
	return store, nil
}

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	switch os.Getenv("FT_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	case "production":
		return Production
	default:
		// Default to production for safety
		return Production
	}
}
