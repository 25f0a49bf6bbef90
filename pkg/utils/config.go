package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Session SessionConfig
	Booking BookingConfig
	Metrics MetricsConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	Timezone        string
	ShutdownTimeout time.Duration
}

type SessionConfig struct {
	CookieName    string
	TTL           time.Duration
	SweepInterval time.Duration
}

type BookingConfig struct {
	MaxParticipants int
}

type MetricsConfig struct {
	Enabled bool
}

// Location resolves the timezone "today" is computed in.
func (c AppConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", c.Timezone, err)
	}
	return loc, nil
}

// LoadConfig reads path (a dotenv file, optional) and lets the environment override it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "tour-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("TIMEZONE", "Europe/Moscow")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("SESSION_COOKIE", "tour_session")
	v.SetDefault("SESSION_TTL_MINUTES", 60)
	v.SetDefault("SESSION_SWEEP_SECONDS", 60)
	v.SetDefault("MAX_PARTICIPANTS", 10)
	v.SetDefault("METRICS_ENABLED", true)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			Timezone:        v.GetString("TIMEZONE"),
			ShutdownTimeout: time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
		},
		Session: SessionConfig{
			CookieName:    v.GetString("SESSION_COOKIE"),
			TTL:           time.Duration(v.GetInt("SESSION_TTL_MINUTES")) * time.Minute,
			SweepInterval: time.Duration(v.GetInt("SESSION_SWEEP_SECONDS")) * time.Second,
		},
		Booking: BookingConfig{
			MaxParticipants: v.GetInt("MAX_PARTICIPANTS"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	if config.Booking.MaxParticipants < 1 {
		return nil, fmt.Errorf("MAX_PARTICIPANTS must be positive, got %d", config.Booking.MaxParticipants)
	}

	return config, nil
}
