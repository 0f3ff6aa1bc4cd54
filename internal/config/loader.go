package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the server's runtime settings.
type Config struct {
	Addr          string
	CORSOrigins   []string
	SessionDir    string
	MaxUploadSize int64
	SessionTTL    time.Duration
}

// Default returns the settings used when no config file or env overrides are
// present.
func Default() Config {
	return Config{
		Addr:          ":8080",
		CORSOrigins:   []string{"http://localhost:3000"},
		SessionDir:    "./data/sessions",
		MaxUploadSize: 32 << 20,
		SessionTTL:    24 * time.Hour,
	}
}

// Load reads config.yaml from configPath; DA_-prefixed environment variables
// take precedence over the file, and both over the defaults.
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("DA")

	v.BindEnv("server.addr")
	v.BindEnv("server.cors_origins")
	v.BindEnv("session.dir")
	v.BindEnv("session.ttl")
	v.BindEnv("upload.max_size")

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config.yaml found, using defaults and env vars")
	} else {
		log.Println("Loaded config.yaml")
	}

	if v.IsSet("server.addr") {
		cfg.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.cors_origins") {
		cfg.CORSOrigins = v.GetStringSlice("server.cors_origins")
	}
	if v.IsSet("session.dir") {
		cfg.SessionDir = v.GetString("session.dir")
	}
	if v.IsSet("session.ttl") {
		cfg.SessionTTL = v.GetDuration("session.ttl")
	}
	if v.IsSet("upload.max_size") {
		cfg.MaxUploadSize = v.GetInt64("upload.max_size")
	}

	return cfg, nil
}
