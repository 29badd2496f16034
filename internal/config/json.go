package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and the
// string-friendly [Duration] wrapper so that config files can spell
// durations as "5m" or "168h".
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey      string   `json:"token_sign_key"`
		TokenIssuer       string   `json:"token_issuer"`
		TokenDuration     Duration `json:"token_duration"`
		AdminUsername     string   `json:"admin_username"`
		MinPasswordLength int      `json:"min_password_length"`
		CodeTTL           Duration `json:"code_ttl"`
		ResetTokenTTL     Duration `json:"reset_token_ttl"`
		Version           string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			UsersFile string `json:"users_file"`
			FicsFile  string `json:"fics_file"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Telegram struct {
		BotToken string `json:"bot_token"`
		Enabled  bool   `json:"enabled"`
	} `json:"telegram,omitempty"`

	Workers struct {
		SweepInterval     Duration `json:"sweep_interval"`
		ShuffleInterval   Duration `json:"shuffle_interval"`
		KeepAliveInterval Duration `json:"keep_alive_interval"`
		KeepAliveURL      string   `json:"keep_alive_url"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:      jsonCfg.App.TokenSignKey,
			TokenIssuer:       jsonCfg.App.TokenIssuer,
			TokenDuration:     time.Duration(jsonCfg.App.TokenDuration),
			AdminUsername:     jsonCfg.App.AdminUsername,
			MinPasswordLength: jsonCfg.App.MinPasswordLength,
			CodeTTL:           time.Duration(jsonCfg.App.CodeTTL),
			ResetTokenTTL:     time.Duration(jsonCfg.App.ResetTokenTTL),
			Version:           jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				UsersFile: jsonCfg.Storage.Files.UsersFile,
				FicsFile:  jsonCfg.Storage.Files.FicsFile,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Telegram: Telegram{
			BotToken: jsonCfg.Telegram.BotToken,
			Enabled:  jsonCfg.Telegram.Enabled,
		},
		Workers: Workers{
			SweepInterval:     time.Duration(jsonCfg.Workers.SweepInterval),
			ShuffleInterval:   time.Duration(jsonCfg.Workers.ShuffleInterval),
			KeepAliveInterval: time.Duration(jsonCfg.Workers.KeepAliveInterval),
			KeepAliveURL:      jsonCfg.Workers.KeepAliveURL,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
