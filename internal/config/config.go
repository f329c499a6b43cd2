package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"salesstats/internal/core"
	applog "salesstats/internal/log"
	"salesstats/internal/report"
)

type Config struct {
	// Ledger source selection
	LedgerSource  string
	LedgerCSVPath string

	// Database
	SQLiteDBPath string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// Report parameters, kept as the raw strings the user typed
	ReportMonth     string
	ReportYear      string
	ReportWeekStart string
	Reports         string
	CurrencyPrefix  string
	ReportTimeout   time.Duration

	// AMQP (optional report publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	LogLevel string
}

// Valid ledger sources.
var validSources = []string{"csv", "sqlite", "sheets", "memory"}

func Load() *Config {
	cfg := &Config{
		LedgerSource:  getEnv("LEDGER_SOURCE", "csv"),
		LedgerCSVPath: getEnv("LEDGER_CSV_PATH", "abcde.csv"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/sales.db"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Sales"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),

		ReportMonth:     getEnv("REPORT_MONTH", "01"),
		ReportYear:      getEnv("REPORT_YEAR", "2019"),
		ReportWeekStart: getEnv("REPORT_WEEK_START", "2019-01-01"),
		Reports:         getEnv("REPORTS", ""),
		CurrencyPrefix:  getEnvRaw("CURRENCY_PREFIX", core.DefaultCurrency),
		ReportTimeout:   getEnvDuration("REPORT_TIMEOUT", 30*time.Second),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "salesstats"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sales_reports"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	isValidSource := false
	for _, s := range validSources {
		if c.LedgerSource == s {
			isValidSource = true
			break
		}
	}
	if !isValidSource {
		errors = append(errors, fmt.Sprintf("invalid ledger source '%s': must be one of %v", c.LedgerSource, validSources))
	}

	switch c.LedgerSource {
	case "csv":
		if c.LedgerCSVPath == "" {
			errors = append(errors, "ledger CSV path cannot be empty when using csv source")
		} else if _, err := os.Stat(c.LedgerCSVPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("ledger CSV file does not exist: %s", c.LedgerCSVPath))
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite source")
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when using sheets source")
		}
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE must be provided for sheets source")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if _, _, err := core.ParseMonthYear(c.ReportMonth, c.ReportYear); err != nil {
		errors = append(errors, fmt.Sprintf("invalid report month/year '%s-%s': %v", c.ReportMonth, c.ReportYear, err))
	}
	if _, err := core.ParseDate(c.ReportWeekStart); err != nil {
		errors = append(errors, fmt.Sprintf("invalid report week start '%s': %v", c.ReportWeekStart, err))
	}
	if _, err := report.ParseKinds(c.Reports); err != nil {
		errors = append(errors, fmt.Sprintf("invalid reports '%s': %v", c.Reports, err))
	}

	if c.ReportTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid report timeout %v: must be at least 1 second", c.ReportTimeout))
	} else if c.ReportTimeout > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid report timeout %v: must be at most 1 hour", c.ReportTimeout))
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

	if _, ok := applog.ParseLevel(c.LogLevel); !ok {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ReportParams converts the raw report settings into engine parameters.
func (c *Config) ReportParams() (report.Params, error) {
	month, year, err := core.ParseMonthYear(c.ReportMonth, c.ReportYear)
	if err != nil {
		return report.Params{}, err
	}
	weekStart, err := core.ParseDate(c.ReportWeekStart)
	if err != nil {
		return report.Params{}, err
	}
	return report.Params{
		Month:     month,
		Year:      year,
		WeekStart: weekStart,
		Currency:  c.CurrencyPrefix,
	}, nil
}

// ReportKinds returns the selected reports in presentation order.
func (c *Config) ReportKinds() ([]report.Kind, error) {
	return report.ParseKinds(c.Reports)
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRaw keeps surrounding whitespace and lets a set-but-empty variable win.
func getEnvRaw(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
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
