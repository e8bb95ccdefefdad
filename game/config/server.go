package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Server holds every setting the server process reads at startup.
type Server struct {
	Host           string   `env:"PING_HOST" envDefault:"localhost"`
	Port           int      `env:"PING_PORT" envDefault:"8080"`
	Debug          bool     `env:"PING_DEBUG"`
	AllowedOrigins []string `env:"PING_ALLOWED_ORIGINS" envSeparator:","`

	NgrokEnabled   bool   `env:"NGROK_ENABLED"`
	NgrokAuthToken string `env:"NGROK_AUTHTOKEN"`
	NgrokDomain    string `env:"NGROK_DOMAIN"`

	OtelEnabled  bool   `env:"PING_OTEL_ENABLED"`
	OtelEndpoint string `env:"PING_OTEL_ENDPOINT" envDefault:"http://localhost:4318"`
}

// Load reads the configuration from the environment.
func Load() (*Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// BindFlags registers flags whose defaults are the values already loaded, so
// an explicit flag overrides the environment.
func (c *Server) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Host, "host", c.Host, "HTTP server host")
	fs.IntVar(&c.Port, "port", c.Port, "HTTP server port")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug logging")
	fs.Func("allowed-origins", "Comma separated websocket origins (default: any)", func(s string) error {
		c.AllowedOrigins = splitList(s)
		return nil
	})
	fs.BoolVar(&c.NgrokEnabled, "ngrok", c.NgrokEnabled, "Enable ngrok tunnel")
	fs.StringVar(&c.NgrokAuthToken, "ngrok-auth", c.NgrokAuthToken, "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	fs.StringVar(&c.NgrokDomain, "ngrok-domain", c.NgrokDomain, "Custom ngrok domain (optional)")
	fs.BoolVar(&c.OtelEnabled, "otel", c.OtelEnabled, "Export traces over OTLP/HTTP")
	fs.StringVar(&c.OtelEndpoint, "otel-endpoint", c.OtelEndpoint, "OTLP/HTTP collector endpoint")
}

// Validate reports the first invalid setting.
func (c *Server) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if strings.TrimSpace(c.Host) == "" {
		return fmt.Errorf("%w: empty host", ErrInvalidConfig)
	}
	if c.OtelEnabled && c.OtelEndpoint == "" {
		return fmt.Errorf("%w: tracing enabled without an endpoint", ErrInvalidConfig)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Server) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// OriginAllowed reports whether a websocket handshake from origin may
// proceed. An empty allow list accepts every origin.
func (c *Server) OriginAllowed(origin string) bool {
	if len(c.AllowedOrigins) == 0 || origin == "" {
		return true
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
