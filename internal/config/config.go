package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	JWTSecret                string
	JWTUser                  string
	JWTPassword              string
	CacheTTL                 time.Duration
	CacheMaxEntries          int
	ProviderTimeout          time.Duration
	TLSCertFile              string
	TLSKeyFile               string
	SerpAPIEndpoint          string
	SerpAPIKey               string
	RapidProductsHost        string
	RapidProductsRapidApiKey string
}

func Load() *Config {
	v := viper.New()

	v.SetDefault("auth_user", "demo")
	v.SetDefault("auth_pass", "demo123")
	v.SetDefault("cache_ttl", "1h")
	v.SetDefault("cache_max_entries", 0)
	v.SetDefault("provider_timeout", "0s")

	v.SetDefault("serpapi_endpoint", "https://serpapi.com/search.json")
	v.SetDefault("rapid_products_host", "real-time-product-search.p.rapidapi.com")

	if path := os.Getenv("CLONAR_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		// Fallback to conventional locations for local dev
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/clonar") // add the container path
	}

	if err := v.ReadInConfig(); err != nil {
		logrus.Infof("no config file found, using defaults + env vars: %v", err)
	}

	v.AutomaticEnv()

	ttl, err := time.ParseDuration(v.GetString("cache_ttl"))
	if err != nil {
		logrus.Fatalf("bad cache_ttl: %v", err)
	}
	pt, err := time.ParseDuration(v.GetString("provider_timeout"))
	if err != nil {
		logrus.Fatalf("bad provider_timeout: %v", err)
	}

	return &Config{
		JWTSecret:                v.GetString("jwt_secret"),
		JWTUser:                  v.GetString("auth_user"),
		JWTPassword:              v.GetString("auth_pass"),
		CacheTTL:                 ttl,
		CacheMaxEntries:          v.GetInt("cache_max_entries"),
		ProviderTimeout:          pt,
		TLSCertFile:              os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:               os.Getenv("TLS_KEY_FILE"),
		SerpAPIEndpoint:          v.GetString("serpapi_endpoint"),
		SerpAPIKey:               v.GetString("serpapi_key"),
		RapidProductsHost:        v.GetString("rapid_products_host"),
		RapidProductsRapidApiKey: v.GetString("rapid_products_rapidapikey"),
	}
}
