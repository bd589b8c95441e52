package backend

import (
	"context"
	"fmt"
	"log/slog"

	"cashflow/internal/log"
	"cashflow/internal/sheets"
	"cashflow/internal/sheets/file"
	gsheet "cashflow/internal/sheets/google"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateReader implements Factory.
func (f *DefaultFactory) CreateReader(ctx context.Context, config Config) (sheets.RuleReader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var reader sheets.RuleReader
	switch config.Type {
	case FileBackend:
		r := file.New(config.RulesFile)
		if config.Location != nil {
			r.Location = config.Location
		}
		reader = r
		f.logger.Info("Initialized file backend",
			log.FieldBackend, config.Type,
			log.FieldPath, config.RulesFile)
	case SheetsBackend:
		cli, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:   config.GoogleSpreadsheetID,
			SheetName:       config.GoogleSheetName,
			CredentialsJSON: config.GoogleServiceAccountJSON,
			CredentialsFile: config.GoogleServiceAccountFile,
			Location:        config.Location,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		reader = cli
		f.logger.Info("Initialized Google Sheets backend",
			log.FieldBackend, config.Type,
			"sheet", config.GoogleSheetName)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	if config.CacheTTL > 0 {
		reader = sheets.NewCachedReader(reader, config.CacheTTL)
		f.logger.Debug("Rules cache enabled", "ttl", config.CacheTTL)
	}
	return reader, nil
}
