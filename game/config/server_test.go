package config

import (
	"errors"
	"flag"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Host != "localhost" {
		t.Errorf("Expected host localhost, got %s", cfg.Host)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.Debug || cfg.NgrokEnabled || cfg.OtelEnabled {
		t.Error("Expected debug, ngrok and tracing to be off by default")
	}
	if cfg.Addr() != "localhost:8080" {
		t.Errorf("Expected localhost:8080, got %s", cfg.Addr())
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PING_HOST", "0.0.0.0")
	t.Setenv("PING_PORT", "9090")
	t.Setenv("PING_DEBUG", "true")
	t.Setenv("PING_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("NGROK_ENABLED", "1")
	t.Setenv("NGROK_AUTHTOKEN", "token")
	t.Setenv("PING_OTEL_ENABLED", "true")
	t.Setenv("PING_OTEL_ENDPOINT", "http://collector:4318")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:9090" {
		t.Errorf("Expected 0.0.0.0:9090, got %s", cfg.Addr())
	}
	if !cfg.Debug || !cfg.NgrokEnabled || !cfg.OtelEnabled {
		t.Errorf("Expected flags on, got %+v", cfg)
	}
	if cfg.NgrokAuthToken != "token" || cfg.OtelEndpoint != "http://collector:4318" {
		t.Errorf("Unexpected values: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("Expected two origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoad_Error(t *testing.T) {
	t.Setenv("PING_PORT", "not-an-int")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("Expected parse env prefix, got %v", err)
	}
}

func TestBindFlags_Override(t *testing.T) {
	t.Setenv("PING_PORT", "9090")
	t.Setenv("PING_HOST", "example.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindFlags(fs)
	if err := fs.Parse([]string{"-port", "7070", "-allowed-origins", " http://x.test , "}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	if cfg.Port != 7070 {
		t.Errorf("Expected flag to override port, got %d", cfg.Port)
	}
	if cfg.Host != "example.test" {
		t.Errorf("Expected env host to survive, got %s", cfg.Host)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://x.test" {
		t.Errorf("Expected one trimmed origin, got %v", cfg.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Server
		wantErr bool
	}{
		{"valid", Server{Host: "localhost", Port: 8080}, false},
		{"ephemeral port", Server{Host: "localhost", Port: 0}, false},
		{"negative port", Server{Host: "localhost", Port: -1}, true},
		{"port too large", Server{Host: "localhost", Port: 70000}, true},
		{"empty host", Server{Host: " ", Port: 8080}, true},
		{"tracing without endpoint", Server{Host: "localhost", Port: 8080, OtelEnabled: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestOriginAllowed(t *testing.T) {
	open := Server{}
	if !open.OriginAllowed("http://anything.test") {
		t.Error("Expected empty allow list to accept any origin")
	}

	restricted := Server{AllowedOrigins: []string{"http://game.test"}}
	tests := map[string]bool{
		"http://game.test":  true,
		"HTTP://GAME.TEST":  true,
		"http://other.test": false,
		"":                  true,
	}
	for origin, want := range tests {
		if got := restricted.OriginAllowed(origin); got != want {
			t.Errorf("OriginAllowed(%q): expected %v, got %v", origin, want, got)
		}
	}
}
