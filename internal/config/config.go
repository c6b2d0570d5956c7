package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	// Local session cookies are signed with this secret.
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	SessionTTLMin int    `mapstructure:"SESSION_TTL_MINUTES"`

	// DrChrono OAuth application settings.
	DrChronoClientID     string `mapstructure:"DRCHRONO_CLIENT_ID"`
	DrChronoClientSecret string `mapstructure:"DRCHRONO_CLIENT_SECRET"`
	DrChronoRedirectURI  string `mapstructure:"DRCHRONO_REDIRECT_URI"`
	DrChronoScopes       string `mapstructure:"DRCHRONO_SCOPES"`
	DrChronoBaseURL      string `mapstructure:"DRCHRONO_BASE_URL"`

	// Path to the blank HCFA-1500 form template PDF.
	HCFATemplate string `mapstructure:"HCFA_TEMPLATE"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("SESSION_TTL_MINUTES", 480)
	v.SetDefault("DRCHRONO_SCOPES", "patients:read clinical:read billing:read user:read")
	v.SetDefault("DRCHRONO_BASE_URL", "https://app.drchrono.com")
	v.SetDefault("HCFA_TEMPLATE", "./static/HCFA.pdf")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("SESSION_TTL_MINUTES")
	v.BindEnv("DRCHRONO_CLIENT_ID")
	v.BindEnv("DRCHRONO_CLIENT_SECRET")
	v.BindEnv("DRCHRONO_REDIRECT_URI")
	v.BindEnv("DRCHRONO_SCOPES")
	v.BindEnv("DRCHRONO_BASE_URL")
	v.BindEnv("HCFA_TEMPLATE")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() && cfg.SessionSecret == "" {
		cfg.SessionSecret = "dev-session-secret"
		log.Println("WARNING: SESSION_SECRET not set; using a development-only default")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Scopes returns the configured DrChrono scopes as a slice.
func (c *Config) Scopes() []string {
	return strings.Fields(c.DrChronoScopes)
}

// Validate checks that the configuration is safe to run. Outside development
// the DrChrono OAuth application and the session signing secret must be
// configured, otherwise no user can ever connect.
func (c *Config) Validate() error {
	if !c.IsDev() {
		if c.SessionSecret == "" {
			return fmt.Errorf("SESSION_SECRET is required outside development")
		}
		if c.DrChronoClientID == "" || c.DrChronoClientSecret == "" {
			return fmt.Errorf("DRCHRONO_CLIENT_ID and DRCHRONO_CLIENT_SECRET are required outside development")
		}
		if c.DrChronoRedirectURI == "" {
			return fmt.Errorf("DRCHRONO_REDIRECT_URI is required outside development")
		}
	}
	if c.SessionTTLMin <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.SessionTTLMin)
	}
	return nil
}
