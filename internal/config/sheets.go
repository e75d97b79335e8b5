package config

import (
	"github.com/Veraticus/feedback-topics/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration.
// It follows this precedence:
// 1. Viper configuration (from config file or TOPICS_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	cfg.ServiceAccountPath = ExpandPath(v.GetString("sheets.service_account_path"))
	cfg.ClientID = v.GetString("sheets.client_id")
	cfg.ClientSecret = v.GetString("sheets.client_secret")
	cfg.RefreshToken = v.GetString("sheets.refresh_token")
	cfg.SpreadsheetID = v.GetString("sheets.spreadsheet_id")
	if name := v.GetString("sheets.spreadsheet_name"); name != "" {
		cfg.SpreadsheetName = name
	}
	if tz := v.GetString("sheets.timezone"); tz != "" {
		cfg.TimeZone = tz
	}
	if v.IsSet("sheets.formatting") {
		cfg.EnableFormatting = v.GetBool("sheets.formatting")
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	cfg.ServiceAccountPath = ExpandPath(cfg.ServiceAccountPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
