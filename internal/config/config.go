package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/phenrril/bildy-admin/internal/adapters/bildy"
)

const (
	KeyAPIURL     = "bildy_api_url"
	KeyLoginPath  = "bildy_login_path"
	KeyTimeout    = "bildy_timeout"
	KeyPort       = "port"
	KeyEnv        = "app_env"
	KeySessionKey = "session_key"
	KeyDSN        = "db_dsn"
)

type Config struct {
	APIURL     string
	LoginPath  string
	Timeout    time.Duration
	Port       string
	Env        string
	SessionKey string
	DSN        string
}

// New returns a viper instance reading the process environment, after
// loading an optional .env from the working directory.
func New() *viper.Viper {
	_ = godotenv.Load()
	v := viper.New()
	v.SetDefault(KeyAPIURL, bildy.DefaultBaseURL)
	v.SetDefault(KeyLoginPath, "/api/user/login")
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyEnv, "development")
	v.SetDefault(KeySessionKey, "")
	v.SetDefault(KeyDSN, "")
	v.AutomaticEnv()
	return v
}

func Load(v *viper.Viper) Config {
	return Config{
		APIURL:     strings.TrimSpace(v.GetString(KeyAPIURL)),
		LoginPath:  strings.TrimSpace(v.GetString(KeyLoginPath)),
		Timeout:    v.GetDuration(KeyTimeout),
		Port:       strings.TrimSpace(v.GetString(KeyPort)),
		Env:        strings.ToLower(strings.TrimSpace(v.GetString(KeyEnv))),
		SessionKey: v.GetString(KeySessionKey),
		DSN:        strings.TrimSpace(v.GetString(KeyDSN)),
	}
}

func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "dev"
}

func (c Config) IsProd() bool { return c.Env == "production" || c.Env == "prod" }
