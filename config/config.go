package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
	RunMode            string `env:"RUN_MODE" envDefault:"once"`
	AllowMissingQuotes bool   `env:"ALLOW_MISSING_QUOTES" envDefault:"true"`
	HTTP               HTTP
	API                API
	GoogleSheets       GoogleSheets
	GoogleDrive        GoogleDrive
	Telegram           Telegram
	Jobs               Jobs
	Report             Report
}

type HTTP struct {
	Port int `env:"HTTP_PORT" envDefault:"8080"`
}

type API struct {
	Debug      bool          `env:"API_DEBUG" envDefault:"false"`
	Timeout    time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	FinanceApi FinanceApi
	XApi       XApi
}

type FinanceApi struct {
	Url    string `env:"FINANCE_API_URL" envDefault:"https://financialmodelingprep.com"`
	ApiKey string `env:"FINANCE_API_KEY,notEmpty"`
}

type XApi struct {
	Url               string `env:"X_API_URL" envDefault:"https://api.twitter.com"`
	ConsumerKey       string `env:"X_CONSUMER_KEY,notEmpty"`
	ConsumerSecret    string `env:"X_CONSUMER_SECRET,notEmpty"`
	AccessToken       string `env:"X_ACCESS_TOKEN,notEmpty"`
	AccessTokenSecret string `env:"X_ACCESS_TOKEN_SECRET,notEmpty"`
}

type GoogleSheets struct {
	CredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:"credentials.json"`
	SpreadsheetID   string `env:"SPREADSHEET_ID,notEmpty"`
	Range           string `env:"SPREADSHEET_RANGE" envDefault:"stocks"`
}

type GoogleDrive struct {
	CredentialsFile string        `env:"GOOGLE_CREDENTIALS_FILE" envDefault:"credentials.json"`
	FileTTL         time.Duration `env:"GOOGLE_DRIVE_FILE_TTL" envDefault:"720h"`
}

// Telegram mirror is disabled while Token is empty.
type Telegram struct {
	Token  string `env:"TELEGRAM_TOKEN" envDefault:""`
	ChatID int64  `env:"TELEGRAM_CHAT_ID" envDefault:"0"`
}

type Jobs struct {
	PostResultsCrontab       string        `env:"POST_RESULTS_CRONTAB" envDefault:"0 5 16 * * 1-5"`
	DeleteOldReportsInterval time.Duration `env:"DELETE_OLD_REPORTS_INTERVAL" envDefault:"24h"`
}

type Report struct {
	Enabled bool `env:"REPORT_ENABLED" envDefault:"false"`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg, err := Load()
	if err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}

func Load() (*Config, error) {
	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, err
	}

	return cfg, nil
}
