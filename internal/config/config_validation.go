// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" && (cfg.Storage.Files.UsersFile == "" || cfg.Storage.Files.FicsFile == "") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Telegram.Enabled && cfg.Telegram.BotToken == "" {
		return ErrInvalidTelegramConfigs
	}

	if cfg.Workers.SweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
