package backend

import (
	"errors"
	"fmt"
	"time"

	"cashflow/internal/config"
)

// Type names a rule source.
type Type string

const (
	FileBackend   Type = config.BackendFile
	SheetsBackend Type = config.BackendSheets
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SheetsBackend:
		return true
	default:
		return false
	}
}

// Config holds what the factory needs to build a rule source.
type Config struct {
	Type Type

	// File
	RulesFile string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// CacheTTL wraps the source in a cache when positive.
	CacheTTL time.Duration
	Location *time.Location
}

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, errors.New("app config is nil")
	}
	t := Type(appConfig.DataBackend)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}
	return Config{
		Type:                     t,
		RulesFile:                appConfig.RulesFile,
		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleSheetName:          appConfig.GoogleSheetName,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
	}, nil
}

func (c Config) Validate() error {
	switch c.Type {
	case FileBackend:
		if c.RulesFile == "" {
			return errors.New("rules file is required for file backend")
		}
	case SheetsBackend:
		if c.GoogleSpreadsheetID == "" {
			return errors.New("Google Spreadsheet ID is required for sheets backend")
		}
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" {
			return errors.New("service account JSON or file is required for sheets backend")
		}
	default:
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	return nil
}
