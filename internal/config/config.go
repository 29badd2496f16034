// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// ficarchive application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters,
	// the privileged admin username, and credential policy knobs.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the persistence backend: either
	// the JSON collection files or the embedded SQLite database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Telegram holds the notification channel settings.
	Telegram Telegram `envPrefix:"TELEGRAM_"`

	// Workers holds intervals for the background jobs (registry sweep,
	// recommendation reshuffle, keep-alive pings).
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and credential policy.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential. Rotating it invalidates every
	// previously issued token.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "168h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// AdminUsername is the single privileged username; the account
	// registered under this name becomes the moderator.
	// Env: APP_ADMIN_USERNAME
	AdminUsername string `env:"ADMIN_USERNAME"`

	// MinPasswordLength is the minimum accepted password length at
	// registration and password reset.
	// Env: APP_MIN_PASSWORD_LENGTH
	MinPasswordLength int `env:"MIN_PASSWORD_LENGTH"`

	// CodeTTL is the validity window of a one-time login code.
	// Env: APP_CODE_TTL
	CodeTTL time.Duration `env:"CODE_TTL"`

	// ResetTokenTTL is the validity window of a password-reset token.
	// Env: APP_RESET_TOKEN_TTL
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the persistence backends.
// A non-empty DB.DSN selects the embedded SQLite backend; otherwise the
// JSON collection files are used.
type Storage struct {
	// DB holds the embedded database settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the JSON collection file paths.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the embedded SQLite database.
type DB struct {
	// DSN is the SQLite data source name (a file path such as
	// "ficarchive.db"). Leave empty to use the JSON file backend.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds the paths of the JSON collection files. Each collection is
// loaded at startup and rewritten in full on every mutation.
type Files struct {
	// UsersFile is the path of the user collection file.
	// Env: STORAGE_FILES_USERS_FILE
	UsersFile string `env:"USERS_FILE"`

	// FicsFile is the path of the fic collection file.
	// Env: STORAGE_FILES_FICS_FILE
	FicsFile string `env:"FICS_FILE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Telegram holds the settings of the Telegram notification channel.
type Telegram struct {
	// BotToken is the bot API token used to deliver one-time codes and
	// reset links. Must be kept confidential.
	// Env: TELEGRAM_BOT_TOKEN
	BotToken string `env:"BOT_TOKEN"`

	// Enabled turns the channel on. When false (or the token is empty)
	// a no-op notifier is used and two-factor delivery fails hard.
	// Env: TELEGRAM_ENABLED
	Enabled bool `env:"ENABLED"`
}

// Workers holds intervals for the background jobs.
type Workers struct {
	// SweepInterval is the period of the registry sweep that removes
	// expired one-time codes and reset tokens.
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`

	// ShuffleInterval is the period of the recommendation reshuffle.
	// Env: WORKERS_SHUFFLE_INTERVAL
	ShuffleInterval time.Duration `env:"SHUFFLE_INTERVAL"`

	// KeepAliveInterval is the period of the keep-alive self ping.
	// Env: WORKERS_KEEP_ALIVE_INTERVAL
	KeepAliveInterval time.Duration `env:"KEEP_ALIVE_INTERVAL"`

	// KeepAliveURL is the URL pinged by the keep-alive job. Empty
	// disables the job.
	// Env: WORKERS_KEEP_ALIVE_URL
	KeepAliveURL string `env:"KEEP_ALIVE_URL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first non-zero value wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
