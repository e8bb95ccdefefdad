// Package config provides process configuration for the ping game server.
//
// The config package handles:
//   - Reading settings from the environment (optionally seeded by a .env file)
//   - Binding the same settings to command-line flags, which take precedence
//   - Validating the result before the server starts
//
// Environment Variables:
//
//	PING_HOST             listen host (default localhost)
//	PING_PORT             listen port (default 8080)
//	PING_DEBUG            verbose logging with file:line
//	PING_ALLOWED_ORIGINS  comma separated websocket origins, empty allows all
//	NGROK_ENABLED         expose the server through an ngrok tunnel
//	NGROK_AUTHTOKEN       ngrok auth token
//	NGROK_DOMAIN          optional reserved ngrok domain
//	PING_OTEL_ENABLED     export traces over OTLP/HTTP
//	PING_OTEL_ENDPOINT    OTLP/HTTP collector URL (default http://localhost:4318)
//
// Game parameters (board width, move budget, shoot radius, shapes) are
// fixed and deliberately absent here.
//
// Usage:
//
//	cfg, err := config.Load()
//	cfg.BindFlags(flag.CommandLine)
//	flag.Parse()
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
package config
