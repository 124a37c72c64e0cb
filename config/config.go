package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_HOST=0.0.0.0
//	SERVER_PORT=2949
//	REQUEST_TIMEOUT=30s
//	CORS_ALLOW_ORIGINS=*
//	RATE_LIMIT_RPS=0
//	MARKET_PROVIDER=yahoo
//	YAHOO_BASE_URL=https://query1.finance.yahoo.com
//	PROVIDER_TIMEOUT=20s
//	PROVIDER_CONCURRENCY=4
//	LOG_LEVEL=info
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Provider ProviderConfig // Market data provider settings
	Log      LogConfig      // Logger settings
}

// ServerConfig holds HTTP server settings.
//
// Fields:
//   - Host: interface to bind (e.g., "0.0.0.0").
//   - Port: TCP port to listen on (e.g., "2949").
//   - RequestTimeout: deadline attached to every request context.
//   - AllowOrigins: CORS origins; "*" allows any origin.
//   - RateLimitRPS: per-client requests per second; 0 disables limiting.
//   - RateLimitBurst: bucket size of the per-client limiter.
type ServerConfig struct {
	Host           string
	Port           string
	RequestTimeout time.Duration
	AllowOrigins   []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// ProviderConfig selects and tunes the market data provider.
//
// Fields:
//   - Name: "yahoo" (chart API over HTTP) or "financego" (piquette/finance-go).
//   - YahooBaseURL: base URL of the Yahoo chart API.
//   - UserAgent: User-Agent sent to Yahoo.
//   - Timeout: HTTP client timeout for one provider request.
//   - Concurrency: symbols fetched at once by the yahoo provider.
type ProviderConfig struct {
	Name         string
	YahooBaseURL string
	UserAgent    string
	Timeout      time.Duration
	Concurrency  int
}

// LogConfig controls the global zerolog logger.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Provider names accepted in MARKET_PROVIDER.
const (
	ProviderYahoo     = "yahoo"
	ProviderFinanceGo = "financego"
)

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates
//     the app with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "2949")
	viper.SetDefault("REQUEST_TIMEOUT", "30s")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT_RPS", 0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)

	viper.SetDefault("MARKET_PROVIDER", ProviderYahoo)
	viper.SetDefault("YAHOO_BASE_URL", "https://query1.finance.yahoo.com")
	viper.SetDefault("YAHOO_USER_AGENT", "Mozilla/5.0 (compatible; stockseries/1.0)")
	viper.SetDefault("PROVIDER_TIMEOUT", "20s")
	viper.SetDefault("PROVIDER_CONCURRENCY", 4)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Host:           viper.GetString("SERVER_HOST"),
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
			AllowOrigins:   splitList(viper.GetString("CORS_ALLOW_ORIGINS")),
			RateLimitRPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: viper.GetInt("RATE_LIMIT_BURST"),
		},
		Provider: ProviderConfig{
			Name:         strings.ToLower(viper.GetString("MARKET_PROVIDER")),
			YahooBaseURL: viper.GetString("YAHOO_BASE_URL"),
			UserAgent:    viper.GetString("YAHOO_USER_AGENT"),
			Timeout:      viper.GetDuration("PROVIDER_TIMEOUT"),
			Concurrency:  viper.GetInt("PROVIDER_CONCURRENCY"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}

	validateConfig()
}

// problems lists every missing or invalid field of AppConfig.
func problems() []string {
	var out []string

	if AppConfig.Server.Port == "" {
		out = append(out, "SERVER_PORT")
	}
	if AppConfig.Server.RequestTimeout <= 0 {
		out = append(out, "REQUEST_TIMEOUT")
	}
	if len(AppConfig.Server.AllowOrigins) == 0 {
		out = append(out, "CORS_ALLOW_ORIGINS")
	}
	if AppConfig.Server.RateLimitRPS < 0 {
		out = append(out, "RATE_LIMIT_RPS")
	}
	if AppConfig.Server.RateLimitRPS > 0 && AppConfig.Server.RateLimitBurst < 1 {
		out = append(out, "RATE_LIMIT_BURST")
	}
	switch AppConfig.Provider.Name {
	case ProviderYahoo:
		if AppConfig.Provider.YahooBaseURL == "" {
			out = append(out, "YAHOO_BASE_URL")
		}
	case ProviderFinanceGo:
	default:
		out = append(out, "MARKET_PROVIDER")
	}
	if AppConfig.Provider.Timeout <= 0 {
		out = append(out, "PROVIDER_TIMEOUT")
	}
	if AppConfig.Provider.Concurrency < 1 {
		out = append(out, "PROVIDER_CONCURRENCY")
	}
	return out
}

// validateConfig terminates the application when required variables are
// missing or invalid, so a misconfigured process never starts serving.
func validateConfig() {
	if bad := problems(); len(bad) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", bad)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
