package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration options for the fieldtask client
type Config struct {
	API         APIConfig
	Keystore    KeystoreConfig
	Capture     CaptureConfig
	Validation  ValidationConfig
	Application ApplicationConfig
	Commands    CommandsConfig
}

// APIConfig holds remote backend configuration
type APIConfig struct {
	BaseURL        string        `env:"FT_API_URL"`
	GeocodeURL     string        `env:"FT_GEOCODE_URL"`
	RequestTimeout time.Duration `env:"FT_API_TIMEOUT"`
	Multipart      bool          `env:"FT_API_MULTIPART"`
}

// KeystoreConfig holds local keystore configuration
type KeystoreConfig struct {
	Dir            string        `env:"FT_DB_DIR"`
	Filename       string        `env:"FT_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"FT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"FT_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"FT_DB_DIR_PERMISSIONS"`
}

// CaptureConfig holds photo and location capture configuration.
// Latitude and Longitude are parsed together from FT_POSITION
// ("lat,lon"); HasPosition records whether a position was given.
type CaptureConfig struct {
	Dir         string `env:"FT_CAPTURE_DIR"`
	Latitude    float64
	Longitude   float64
	HasPosition bool
}

// ValidationConfig holds draft validation limits
type ValidationConfig struct {
	TitleMaxLength       int `env:"FT_VALIDATION_TITLE_MAX"`
	DescriptionMaxLength int `env:"FT_VALIDATION_DESCRIPTION_MAX"`
	LocationMaxLength    int `env:"FT_VALIDATION_LOCATION_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"FT_APP_TIMEOUT"`
	Verbose bool          `env:"FT_APP_VERBOSE"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ListDefaultFilter string `env:"FT_LIST_DEFAULT_FILTER"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".ft")

	return &Config{
		API: APIConfig{
			BaseURL:        "https://todo-list.dobleb.cl",
			GeocodeURL:     "https://nominatim.openstreetmap.org/reverse",
			RequestTimeout: 30 * time.Second,
			Multipart:      false,
		},
		Keystore: KeystoreConfig{
			Dir:            defaultDBDir,
			Filename:       "ft.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Capture: CaptureConfig{
			Dir: filepath.Join(defaultDBDir, "captures"),
		},
		Validation: ValidationConfig{
			TitleMaxLength:       100,
			DescriptionMaxLength: 500,
			LocationMaxLength:    140,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
		Commands: CommandsConfig{
			ListDefaultFilter: "all",
		},
	}
}

// GetKeystorePath returns the full path to the keystore database file
func (c *Config) GetKeystorePath() string {
	return filepath.Join(c.Keystore.Dir, c.Keystore.Filename)
}

// GetQueryTimeout returns the keystore query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Keystore.QueryTimeout
}

// GetWriteTimeout returns the keystore write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Keystore.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables.
// A .env file in the working directory is honored first, if present.
func (c *Config) LoadFromEnvironment() error {
	_ = godotenv.Load()

	// API configuration
	if url := os.Getenv("FT_API_URL"); url != "" {
		c.API.BaseURL = strings.TrimRight(url, "/")
	}
	if url := os.Getenv("FT_GEOCODE_URL"); url != "" {
		c.API.GeocodeURL = url
	}
	if timeout := os.Getenv("FT_API_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.API.RequestTimeout = d
		}
	}
	if multipart := os.Getenv("FT_API_MULTIPART"); multipart != "" {
		if b, err := strconv.ParseBool(multipart); err == nil {
			c.API.Multipart = b
		}
	}

	// Keystore configuration
	if dir := os.Getenv("FT_DB_DIR"); dir != "" {
		c.Keystore.Dir = dir
	}
	if filename := os.Getenv("FT_DB_FILENAME"); filename != "" {
		c.Keystore.Filename = filename
	}
	if timeout := os.Getenv("FT_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Keystore.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("FT_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Keystore.WriteTimeout = d
		}
	}
	if perms := os.Getenv("FT_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Keystore.DirPermissions = uint32(p)
		}
	}

	// Capture configuration
	if dir := os.Getenv("FT_CAPTURE_DIR"); dir != "" {
		c.Capture.Dir = dir
	}
	if pos := os.Getenv("FT_POSITION"); pos != "" {
		if lat, lon, ok := ParsePosition(pos); ok {
			c.Capture.Latitude = lat
			c.Capture.Longitude = lon
			c.Capture.HasPosition = true
		}
	}

	// Validation configuration
	if maxLen := os.Getenv("FT_VALIDATION_TITLE_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.TitleMaxLength = n
		}
	}
	if maxLen := os.Getenv("FT_VALIDATION_DESCRIPTION_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.DescriptionMaxLength = n
		}
	}
	if maxLen := os.Getenv("FT_VALIDATION_LOCATION_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.LocationMaxLength = n
		}
	}

	// Application configuration
	if timeout := os.Getenv("FT_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("FT_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	// Commands configuration
	if filter := os.Getenv("FT_LIST_DEFAULT_FILTER"); filter != "" {
		c.Commands.ListDefaultFilter = filter
	}

	return nil
}

// ParsePosition parses a "lat,lon" string into coordinates
func ParsePosition(s string) (lat float64, lon float64, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate API configuration
	if c.API.BaseURL == "" {
		return &ConfigError{Field: "api.base_url", Message: "API base URL cannot be empty"}
	}
	if c.API.RequestTimeout <= 0 {
		return &ConfigError{Field: "api.request_timeout", Message: "request timeout must be positive"}
	}

	// Validate keystore configuration
	if c.Keystore.Dir == "" {
		return &ConfigError{Field: "keystore.dir", Message: "keystore directory cannot be empty"}
	}
	if c.Keystore.Filename == "" {
		return &ConfigError{Field: "keystore.filename", Message: "keystore filename cannot be empty"}
	}
	if c.Keystore.QueryTimeout <= 0 {
		return &ConfigError{Field: "keystore.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Keystore.WriteTimeout <= 0 {
		return &ConfigError{Field: "keystore.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate capture configuration
	if c.Capture.Dir == "" {
		return &ConfigError{Field: "capture.dir", Message: "capture directory cannot be empty"}
	}

	// Validate validation configuration
	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length cannot be negative"}
	}
	if c.Validation.LocationMaxLength < 1 {
		return &ConfigError{Field: "validation.location_max_length", Message: "location maximum length must be at least 1"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
