package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string        `mapstructure:"SERVER_PORT"`
	APIURL           string        `mapstructure:"API_URL"`
	GAID             string        `mapstructure:"GA_ID"`
	SiteURL          string        `mapstructure:"SITE_URL"`
	SiteName         string        `mapstructure:"SITE_NAME"`
	ContactPhone     string        `mapstructure:"CONTACT_PHONE"`
	WhatsAppNumber   string        `mapstructure:"WHATSAPP_NUMBER"`
	RequestTimeout   time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	DashboardTimeout time.Duration `mapstructure:"DASHBOARD_TIMEOUT"`
	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	RedisPassword    string        `mapstructure:"REDIS_PASSWORD"`
	SessionTTL       time.Duration `mapstructure:"SESSION_TTL"`
	RememberTTL      time.Duration `mapstructure:"REMEMBER_TTL"`
	PostgresURL      string        `mapstructure:"POSTGRES_URL"`
}

// Load reads the configuration from the environment. Every key carries a
// default so that Unmarshal picks up env overrides without a config file.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVER_PORT", ":3000")
	v.SetDefault("API_URL", "http://localhost:5000/api")
	v.SetDefault("GA_ID", "")
	v.SetDefault("SITE_URL", "http://localhost:3000")
	v.SetDefault("SITE_NAME", "Travel Agency")
	v.SetDefault("CONTACT_PHONE", "")
	v.SetDefault("WHATSAPP_NUMBER", "")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("DASHBOARD_TIMEOUT", "15s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("REMEMBER_TTL", "720h")
	v.SetDefault("POSTGRES_URL", "")

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}
