package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, collaborator URLs)
// - default: Values common across all environments (timeouts, state backend)
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	CORS   CORSConfig
	Log    LogConfig
	Coupon CouponConfig
	Order  OrderConfig
	State  StateConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Santiago"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-14400"` // -4*60*60
}

// CouponConfig points at the coupon validation collaborator.
type CouponConfig struct {
	BaseURL string        `envconfig:"COUPON_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"COUPON_TIMEOUT" default:"10s"`
}

// OrderConfig points at the order submission collaborator.
type OrderConfig struct {
	SubmitURL string        `envconfig:"ORDER_SUBMIT_URL" required:"true"`
	Timeout   time.Duration `envconfig:"ORDER_TIMEOUT" default:"10s"`
}

// StateConfig selects where the cart state survives restarts.
type StateConfig struct {
	Backend   string        `envconfig:"STATE_BACKEND" default:"file"` // memory | file | redis
	FilePath  string        `envconfig:"STATE_FILE_PATH" default:"cart-state.json"`
	RedisAddr string        `envconfig:"STATE_REDIS_ADDR" default:"localhost:6379"`
	Key       string        `envconfig:"STATE_KEY" default:"storefront-cart"`
	TTL       time.Duration `envconfig:"STATE_TTL" default:"0"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Coupon: CouponConfig{
			BaseURL: "http://localhost:18080",
			Timeout: 2 * time.Second,
		},
		Order: OrderConfig{
			SubmitURL: "http://localhost:18081/orders",
			Timeout:   2 * time.Second,
		},
		State: StateConfig{
			Backend: "memory",
			Key:     "storefront-cart-test",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "America/Santiago",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -14400,
		},
	}
}
