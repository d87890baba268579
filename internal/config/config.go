package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort        = 8080
	defaultReadTimeout     = 15
	defaultWriteTimeout    = 15
	defaultIdleTimeout     = 60
	defaultShutdownTimeout = 10

	defaultDBPort          = 5432
	defaultSSLMode         = "disable"
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 300

	defaultLogLevel = "info"

	defaultMetricsPath    = "/metrics"
	defaultServiceName    = "equipshare-booking"
	defaultPlatformFee    = "0.05"
	defaultLockTimeoutSec = 5
	defaultTxAttempts     = 3
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Pricing  PricingConfig  `toml:"pricing"`
	Booking  BookingConfig  `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PricingConfig хранит ставку комиссии платформы строкой, чтобы не терять точность
type PricingConfig struct {
	PlatformFeeRate string `toml:"platform_fee_rate"`
}

type BookingConfig struct {
	// Запрет бронирований, начинающихся раньше текущего дня
	RejectPastDates bool `toml:"reject_past_dates"`
	// Максимальное время операции создания бронирования, секунды
	LockTimeout int `toml:"lock_timeout"`
	// Попытки транзакции создания при конфликте сериализации PostgreSQL
	TxAttempts int `toml:"tx_attempts"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Load читает .env (если есть), затем TOML-файл, применяет переменные окружения,
// значения по умолчанию и проверяет результат
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Booking: BookingConfig{RejectPastDates: true},
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Logs.Level, "EQUIPSHARE_LOG_LEVEL")
	setString(&c.Logs.File, "EQUIPSHARE_LOG_FILE")
	setString(&c.Pricing.PlatformFeeRate, "EQUIPSHARE_PLATFORM_FEE_RATE")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Server.HTTPPort, "EQUIPSHARE_HTTP_PORT"); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("EQUIPSHARE_METRICS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: EQUIPSHARE_METRICS_ENABLED=%q", ErrInvalidConfig, v)
		}
		c.Metrics.Enabled = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = defaultHTTPPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = defaultWriteTimeout
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = defaultIdleTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaultShutdownTimeout
	}

	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = defaultSSLMode
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaultMaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaultMaxIdleConns
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = defaultConnMaxLifetime
	}

	if c.Logs.Level == "" {
		c.Logs.Level = defaultLogLevel
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = defaultMetricsPath
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = defaultServiceName
	}

	if strings.TrimSpace(c.Pricing.PlatformFeeRate) == "" {
		c.Pricing.PlatformFeeRate = defaultPlatformFee
	}
	if c.Booking.LockTimeout == 0 {
		c.Booking.LockTimeout = defaultLockTimeoutSec
	}
	if c.Booking.TxAttempts == 0 {
		c.Booking.TxAttempts = defaultTxAttempts
	}
}

// Validate проверяет обязательные поля и диапазоны значений
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("%w: database.max_idle_conns exceeds max_open_conns", ErrInvalidConfig)
	}
	if c.Booking.LockTimeout < 0 {
		return fmt.Errorf("%w: booking.lock_timeout must not be negative", ErrInvalidConfig)
	}
	if c.Booking.TxAttempts < 1 {
		return fmt.Errorf("%w: booking.tx_attempts must be positive", ErrInvalidConfig)
	}
	if _, err := ParseFeeRate(c.Pricing.PlatformFeeRate); err != nil {
		return err
	}
	return nil
}
