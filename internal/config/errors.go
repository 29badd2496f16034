package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (neither a DSN nor a full set of collection file paths).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidTelegramConfigs indicates the channel was enabled without
	// a bot token.
	ErrInvalidTelegramConfigs = errors.New("invalid telegram configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a non-positive sweep interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
