package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	ServerPort string

	// external association API consumed by the request client
	APIBaseURL string
	APITimeout time.Duration

	AllowOrigins string

	DatabaseDriver string
	DatabaseDSN    string

	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	SessionSecret string
	SessionTTL    time.Duration

	LogLevel string

	GmailUser        string
	GmailAppPassword string
	MailFrom         string
	MailFromName     string
	MailInbox        string
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func LoadConfig() (Config, error) {
	if os.Getenv("ENV") != "prod" {
		// missing .env is fine, the process env still applies
		_ = godotenv.Overload()
	}

	v := viper.New()
	v.SetDefault("env", "dev")
	v.SetDefault("server_port", ":3000")
	v.SetDefault("api_base_url", "http://localhost:5000/api")
	v.SetDefault("api_timeout", "0s")
	v.SetDefault("allow_origins", "*")
	v.SetDefault("database_driver", DriverMemory)
	v.SetDefault("database_dsn", "")
	v.SetDefault("kafka_broker", "")
	v.SetDefault("kafka_topic", "nacoshub.events")
	v.SetDefault("kafka_group_id", "nacoshub-mailer")
	v.SetDefault("kafka_username", "")
	v.SetDefault("kafka_password", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("session_ttl", "30m")
	v.SetDefault("log_level", "info")
	v.SetDefault("gmail_user", "")
	v.SetDefault("gmail_app_password", "")
	v.SetDefault("mail_from", "")
	v.SetDefault("mail_from_name", "NACOS FUDMA")
	v.SetDefault("mail_inbox", "")
	v.AutomaticEnv()

	cfg := Config{
		Env:              v.GetString("env"),
		ServerPort:       v.GetString("server_port"),
		APIBaseURL:       strings.TrimRight(v.GetString("api_base_url"), "/"),
		APITimeout:       v.GetDuration("api_timeout"),
		AllowOrigins:     v.GetString("allow_origins"),
		DatabaseDriver:   strings.ToLower(v.GetString("database_driver")),
		DatabaseDSN:      v.GetString("database_dsn"),
		KafkaBroker:      v.GetString("kafka_broker"),
		KafkaTopic:       v.GetString("kafka_topic"),
		KafkaGroupID:     v.GetString("kafka_group_id"),
		KafkaUsername:    v.GetString("kafka_username"),
		KafkaPassword:    v.GetString("kafka_password"),
		SessionSecret:    v.GetString("session_secret"),
		SessionTTL:       v.GetDuration("session_ttl"),
		LogLevel:         v.GetString("log_level"),
		GmailUser:        v.GetString("gmail_user"),
		GmailAppPassword: v.GetString("gmail_app_password"),
		MailFrom:         v.GetString("mail_from"),
		MailFromName:     v.GetString("mail_from_name"),
		MailInbox:        v.GetString("mail_inbox"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for driver %q", c.DatabaseDriver)
		}
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	if c.Env == "prod" && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required in prod")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.Env == "prod"
}
