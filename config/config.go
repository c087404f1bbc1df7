package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort    string        `mapstructure:"HTTPPort"`
		MetricsPort string        `mapstructure:"metricsPort"`
		Timeout     time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	JWT JWTConfig `mapstructure:"jwt"`
	AI struct {
		Models        []string      `mapstructure:"models"`
		InsightsModel string        `mapstructure:"insightsModel"`
		Temperature   float32       `mapstructure:"temperature"`
		CacheTTL      time.Duration `mapstructure:"cacheTTL"`
	} `mapstructure:"ai"`
	RateLimit struct {
		General LimitRule `mapstructure:"general"`
		AI      LimitRule `mapstructure:"ai"`
		Auth    LimitRule `mapstructure:"auth"`
	} `mapstructure:"rateLimit"`
	Images struct {
		CacheTTL time.Duration `mapstructure:"cacheTTL"`
	} `mapstructure:"images"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
}

// JWTConfig drives token issuance and validation. SecretKey is populated from
// the JWT_SECRET_KEY environment variable, never from file.
type JWTConfig struct {
	SecretKey  string        `mapstructure:"-"`
	Issuer     string        `mapstructure:"issuer"`
	Audience   string        `mapstructure:"audience"`
	AccessTTL  time.Duration `mapstructure:"accessTTL"`
	RefreshTTL time.Duration `mapstructure:"refreshTTL"`
}

// LimitRule is one per-IP rate-limit policy (max requests per window).
type LimitRule struct {
	Max    int           `mapstructure:"max"`
	Window time.Duration `mapstructure:"window"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	config.JWT.SecretKey = os.Getenv("JWT_SECRET_KEY")

	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
