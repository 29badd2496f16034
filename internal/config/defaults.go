package config

import "time"

// Default values applied when no other configuration source sets a field.
// The secrets (token sign key, bot token) deliberately have no defaults.
const (
	DefaultHTTPAddress       = "0.0.0.0:8080"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultTokenIssuer       = "ficarchive"
	DefaultTokenDuration     = 7 * 24 * time.Hour
	DefaultAdminUsername     = "horrygame"
	DefaultMinPasswordLength = 6
	DefaultCodeTTL           = 5 * time.Minute
	DefaultResetTokenTTL     = 15 * time.Minute
	DefaultUsersFile         = "users.json"
	DefaultFicsFile          = "ff.json"
	DefaultSweepInterval     = time.Minute
	DefaultShuffleInterval   = 30 * time.Minute
	DefaultKeepAliveInterval = 5 * time.Minute
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:       DefaultTokenIssuer,
			TokenDuration:     DefaultTokenDuration,
			AdminUsername:     DefaultAdminUsername,
			MinPasswordLength: DefaultMinPasswordLength,
			CodeTTL:           DefaultCodeTTL,
			ResetTokenTTL:     DefaultResetTokenTTL,
		},
		Storage: Storage{
			Files: Files{
				UsersFile: DefaultUsersFile,
				FicsFile:  DefaultFicsFile,
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			SweepInterval:     DefaultSweepInterval,
			ShuffleInterval:   DefaultShuffleInterval,
			KeepAliveInterval: DefaultKeepAliveInterval,
		},
	}
}
