package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	ErrInvalidMaxRedirects     = errors.New("invalid max redirects: must be positive")
	ErrInvalidTimeout          = errors.New("invalid timeout: must be positive")
	ErrInvalidLengthThresholds = errors.New("invalid url length thresholds: max must be positive and below critical")
	ErrInvalidRateLimit        = errors.New("invalid rate limit: must be non-negative")
	ErrInvalidProxy            = errors.New("invalid proxy url")
)

// ErrConfigNotFound is returned when an explicitly requested configuration
// file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
