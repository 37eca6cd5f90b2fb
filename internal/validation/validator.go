package validation

import (
	"strings"

	"fieldtask/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinMaxLength checks if a trimmed string fits within max characters
func (v *Validator) IsWithinMaxLength(s string, max int) bool {
	return len([]rune(strings.TrimSpace(s))) <= max
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TitleMaxLength returns the configured maximum title length or default
func (v *Validator) TitleMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMaxLength
	}
	return 100 // Default maximum
}

// DescriptionMaxLength returns the configured maximum description length or default
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMaxLength
	}
	return 500 // Default maximum
}

// LocationMaxLength returns the configured maximum location name length or default
func (v *Validator) LocationMaxLength() int {
	if v.config != nil {
		return v.config.Validation.LocationMaxLength
	}
	return 140 // Default maximum
}
