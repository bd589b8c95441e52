package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Backends that can supply rules.
const (
	BackendFile   = "file"
	BackendSheets = "sheets"
)

type Config struct {
	// Rule source
	DataBackend string
	RulesFile   string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Projection
	StartingBalance   decimal.Decimal
	ProjectionDays    int
	CronMaxIterations int
	Workers           int
	Debug             bool

	// Ledger index
	SQLiteDBPath string
	LedgerIndex  string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Watch mode
	WatchInterval time.Duration
	RulesCacheTTL time.Duration
}

func Load() *Config {
	cfg := &Config{
		DataBackend: getEnv("DATA_BACKEND", BackendFile),
		RulesFile:   getEnv("RULES_FILE", "./data/transactions.xlsx"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "transactions"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", getEnv("GOOGLE_APPLICATION_CREDENTIALS", "")),

		StartingBalance:   getEnvDecimal("STARTING_BALANCE", decimal.Zero),
		ProjectionDays:    getEnvInt("PROJECTION_DAYS", 30),
		CronMaxIterations: getEnvInt("CRON_MAX_ITERATIONS", 0),
		Workers:           getEnvInt("PROJECTION_WORKERS", 1),
		Debug:             getEnvBool("DEBUG", false),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/cashflow.db"),
		LedgerIndex:  getEnv("LEDGER_INDEX", "cashflow"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "cashflow"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_index"),

		WatchInterval: getEnvDuration("WATCH_INTERVAL", time.Hour),
		RulesCacheTTL: getEnvDuration("RULES_CACHE_TTL", 5*time.Minute),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	switch c.DataBackend {
	case BackendFile:
		if c.RulesFile == "" {
			errors = append(errors, "rules file cannot be empty when using file backend")
		} else {
			switch strings.ToLower(filepath.Ext(c.RulesFile)) {
			case ".xlsx", ".xlsm", ".csv":
			default:
				errors = append(errors, fmt.Sprintf("unsupported rules file '%s': must be .xlsx, .xlsm or .csv", c.RulesFile))
			}
		}
	case BackendSheets:
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when using sheets backend")
		}
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided for sheets backend")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, []string{BackendFile, BackendSheets}))
	}

	if c.ProjectionDays < 1 {
		errors = append(errors, fmt.Sprintf("invalid projection days %d: must be at least 1", c.ProjectionDays))
	}
	if c.CronMaxIterations < 0 {
		errors = append(errors, fmt.Sprintf("invalid cron max iterations %d: must not be negative", c.CronMaxIterations))
	}
	if c.Workers < 1 {
		errors = append(errors, fmt.Sprintf("invalid projection workers %d: must be at least 1", c.Workers))
	}

	if c.LedgerIndex == "" {
		errors = append(errors, "ledger index name cannot be empty")
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.WatchInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid watch interval %v: must be at least 1 second", c.WatchInterval))
	}
	if c.RulesCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid rules cache TTL %v: must not be negative", c.RulesCacheTTL))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}
