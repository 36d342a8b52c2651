package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
	// timezone names resolve even on hosts without a zoneinfo database
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/GustavoCaso/expenselog/internal/logger"
)

const envPrefix = "EXPENSELOG_"

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var backends = []string{BackendFile, BackendSQLite, BackendMemory}

const (
	defaultBackend     = BackendFile
	defaultFilePath    = "expenselog.json"
	defaultSQLitePath  = "expenselog.db"
	defaultTimezone    = "UTC"
	defaultExportDir   = "."
	defaultTimeout     = 30 * time.Second
	defaultHistoryPath = "expenselog-history.json"
	defaultLogLevel    = logger.LevelInfo
	defaultLogFormat   = logger.FormatText
	defaultLogOutput   = "stderr"
)

type Config struct {
	Logger   logger.Config `yaml:"logger" toml:"logger"`
	Storage  Storage       `yaml:"storage" toml:"storage"`
	Timezone string        `yaml:"timezone" toml:"timezone"`
	NoColor  bool          `yaml:"no_color" toml:"no_color"`
	Export   Export        `yaml:"export" toml:"export"`
	Mailgun  Mailgun       `yaml:"mailgun" toml:"mailgun"`
	Sheets   Sheets        `yaml:"sheets" toml:"sheets"`
	AMQP     AMQP          `yaml:"amqp" toml:"amqp"`
}

type Storage struct {
	Backend string `yaml:"backend" toml:"backend"`
	Path    string `yaml:"path" toml:"path"`
	SQLite  SQLite `yaml:"sqlite" toml:"sqlite"`
}

// SQLite holds connection settings applied when the sqlite backend opens.
type SQLite struct {
	JournalMode  string `yaml:"journal_mode" toml:"journal_mode"`
	Synchronous  string `yaml:"synchronous" toml:"synchronous"`
	BusyTimeout  int    `yaml:"busy_timeout" toml:"busy_timeout"`
	MaxOpenConns int    `yaml:"max_open_conns" toml:"max_open_conns"`
}

type Export struct {
	Dir         string        `yaml:"dir" toml:"dir"`
	Timeout     time.Duration `yaml:"timeout" toml:"timeout"`
	HistoryPath string        `yaml:"history_path" toml:"history_path"`
}

type Mailgun struct {
	Domain  string `yaml:"domain" toml:"domain"`
	APIKey  string `yaml:"api_key" toml:"api_key"`
	APIBase string `yaml:"api_base" toml:"api_base"`
	From    string `yaml:"from" toml:"from"`
	To      string `yaml:"to" toml:"to"`
}

// Configured reports whether enough is set to send mail.
func (m Mailgun) Configured() bool {
	return m.Domain != "" && m.APIKey != "" && m.From != ""
}

type Sheets struct {
	SpreadsheetID   string `yaml:"spreadsheet_id" toml:"spreadsheet_id"`
	SheetName       string `yaml:"sheet_name" toml:"sheet_name"`
	CredentialsFile string `yaml:"credentials_file" toml:"credentials_file"`
	CredentialsJSON string `yaml:"credentials_json" toml:"credentials_json"`
}

func (s Sheets) Configured() bool {
	return s.SpreadsheetID != "" && (s.CredentialsFile != "" || s.CredentialsJSON != "")
}

type AMQP struct {
	URL        string `yaml:"url" toml:"url"`
	Exchange   string `yaml:"exchange" toml:"exchange"`
	RoutingKey string `yaml:"routing_key" toml:"routing_key"`
}

func (a AMQP) Configured() bool {
	return a.URL != ""
}

// Parse reads the config file at path, then applies .env and environment
// overrides and finally the defaults. A missing file is not an error. Files
// ending in .toml are decoded as TOML, anything else as YAML.
func Parse(path string) (*Config, error) {
	conf := &Config{}

	// .env is optional
	_ = godotenv.Load()

	if path != "" {
		if err := conf.parseFile(path); err != nil {
			return nil, err
		}
	}

	if err := conf.parseEnv(); err != nil {
		return nil, err
	}

	conf.applyDefaults()

	return conf, nil
}

func (c *Config) parseFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err = toml.Decode(string(content), c); err != nil {
			return fmt.Errorf("failed to decode TOML config %s: %w", path, err)
		}
	default:
		if err = yaml.Unmarshal(content, c); err != nil {
			return fmt.Errorf("failed to decode YAML config %s: %w", path, err)
		}
	}

	return nil
}

func (c *Config) parseEnv() error {
	setString(&c.Storage.Backend, "STORAGE_BACKEND")
	setString(&c.Storage.Path, "STORAGE_PATH")
	setString(&c.Storage.SQLite.JournalMode, "SQLITE_JOURNAL_MODE")
	setString(&c.Storage.SQLite.Synchronous, "SQLITE_SYNCHRONOUS")

	if level, ok := lookupEnv("LOG_LEVEL"); ok {
		c.Logger.Level = logger.Level(level)
	}
	if format, ok := lookupEnv("LOG_FORMAT"); ok {
		c.Logger.Format = logger.Format(format)
	}
	setString(&c.Logger.Output, "LOG_OUTPUT")

	setString(&c.Timezone, "TIMEZONE")
	if noColor, ok := lookupEnv("NO_COLOR"); ok {
		parsed, err := strconv.ParseBool(noColor)
		if err != nil {
			return fmt.Errorf("invalid %sNO_COLOR %q: %w", envPrefix, noColor, err)
		}
		c.NoColor = parsed
	}

	setString(&c.Export.Dir, "EXPORT_DIR")
	setString(&c.Export.HistoryPath, "HISTORY_PATH")
	if timeout, ok := lookupEnv("EXPORT_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid %sEXPORT_TIMEOUT %q: %w", envPrefix, timeout, err)
		}
		c.Export.Timeout = parsed
	}

	setString(&c.Mailgun.Domain, "MAILGUN_DOMAIN")
	setString(&c.Mailgun.APIKey, "MAILGUN_API_KEY")
	setString(&c.Mailgun.APIBase, "MAILGUN_API_BASE")
	setString(&c.Mailgun.From, "MAILGUN_FROM")
	setString(&c.Mailgun.To, "MAILGUN_TO")

	setString(&c.Sheets.SpreadsheetID, "SHEETS_SPREADSHEET_ID")
	setString(&c.Sheets.SheetName, "SHEETS_SHEET_NAME")
	setString(&c.Sheets.CredentialsFile, "SHEETS_CREDENTIALS_FILE")
	setString(&c.Sheets.CredentialsJSON, "SHEETS_CREDENTIALS_JSON")

	setString(&c.AMQP.URL, "AMQP_URL")
	setString(&c.AMQP.Exchange, "AMQP_EXCHANGE")
	setString(&c.AMQP.RoutingKey, "AMQP_ROUTING_KEY")

	return nil
}

func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultBackend
	}
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case BackendSQLite:
			c.Storage.Path = defaultSQLitePath
		case BackendFile:
			c.Storage.Path = defaultFilePath
		}
	}
	if c.Storage.SQLite.JournalMode == "" {
		c.Storage.SQLite.JournalMode = "WAL"
	}
	if c.Storage.SQLite.BusyTimeout == 0 {
		c.Storage.SQLite.BusyTimeout = 5000
	}

	if c.Logger.Level == "" {
		c.Logger.Level = defaultLogLevel
	}
	if c.Logger.Format == "" {
		c.Logger.Format = defaultLogFormat
	}
	if c.Logger.Output == "" {
		c.Logger.Output = defaultLogOutput
	}

	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}

	if c.Export.Dir == "" {
		c.Export.Dir = defaultExportDir
	}
	if c.Export.Timeout == 0 {
		c.Export.Timeout = defaultTimeout
	}
	if c.Export.HistoryPath == "" {
		c.Export.HistoryPath = defaultHistoryPath
	}

	if c.Sheets.SheetName == "" {
		c.Sheets.SheetName = "Expenses"
	}
	if c.AMQP.Exchange == "" {
		c.AMQP.Exchange = "expenselog"
	}
	if c.AMQP.RoutingKey == "" {
		c.AMQP.RoutingKey = "exports"
	}
}

// Location returns the time zone used to decide today's date.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate reports every problem of the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if !slices.Contains(backends, c.Storage.Backend) {
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.Storage.Backend, backends))
	} else if c.Storage.Backend != BackendMemory && c.Storage.Path == "" {
		problems = append(problems, fmt.Sprintf("storage path cannot be empty when using %s backend", c.Storage.Backend))
	}

	if !c.Logger.Level.Valid() {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.Logger.Level))
	}
	if c.Logger.Format != logger.FormatText && c.Logger.Format != logger.FormatJSON {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.Logger.Format))
	}

	if _, err := c.Location(); err != nil {
		problems = append(problems, err.Error())
	}

	if c.Export.Timeout < 0 {
		problems = append(problems, fmt.Sprintf("export timeout %s cannot be negative", c.Export.Timeout))
	}

	if c.AMQP.URL != "" {
		if parsedURL, err := url.Parse(c.AMQP.URL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQP.URL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
	}

	if (c.Mailgun.Domain != "" || c.Mailgun.APIKey != "") && !c.Mailgun.Configured() {
		problems = append(problems, "mailgun requires domain, api_key and from")
	}

	if c.Sheets.SpreadsheetID != "" && !c.Sheets.Configured() {
		problems = append(problems, "sheets requires credentials_file or credentials_json")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}

	return nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(envPrefix + key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func setString(field *string, key string) {
	if value, ok := lookupEnv(key); ok {
		*field = value
	}
}
