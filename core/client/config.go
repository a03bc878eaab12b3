package client

import (
	"net/http"
	"time"

	"github.com/ebfdash/studentapi/core/session"
)

// Config carries environment-driven client settings.
type Config struct {
	BaseURL     string        `env:"EBF_API_BASE_URL" envDefault:"https://ebf-api.onrender.com"`
	Timeout     time.Duration `env:"EBF_API_TIMEOUT" envDefault:"30s"`
	SessionFile string        `env:"EBF_SESSION_FILE"`
}

// NewFromConfig creates a client from environment-driven settings. A session
// file path enables durable file-backed session storage; otherwise the
// session lives only in memory. Extra options apply after the config.
func NewFromConfig(cfg Config, opts ...Option) *Client {
	base := []Option{
		WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.SessionFile != "" {
		base = append(base, WithStorage(session.NewFileStorage(cfg.SessionFile)))
	}
	return New(cfg.BaseURL, append(base, opts...)...)
}
