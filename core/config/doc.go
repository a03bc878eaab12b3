// Package config provides type-safe environment variable loading with
// per-type caching.
//
// A .env file is loaded once per process on first use; parsing is handled by
// the caarlos0/env struct tags:
//
//	type APIConfig struct {
//		BaseURL string        `env:"EBF_API_BASE_URL" envDefault:"https://ebf-api.onrender.com"`
//		Timeout time.Duration `env:"EBF_API_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg APIConfig
//	config.MustLoad(&cfg)
//
// Each configuration type is parsed exactly once per application lifetime;
// subsequent loads of the same type return the cached value.
package config
