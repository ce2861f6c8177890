package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// LogFile, when set, adds a rotating JSON log file next to the console output.
	LogFile string `mapstructure:"LOG_FILE"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	Redis    RedisConfig    `mapstructure:",squash"`
	Admin    AdminConfig    `mapstructure:",squash"`
	Tracking TrackingConfig `mapstructure:",squash"`
	Metrics  MetricsConfig  `mapstructure:",squash"`
}

// RedisConfig points at the Redis instance holding shipment records.
type RedisConfig struct {
	// URL is redis://[:password@]host[:port][/database].
	URL string `mapstructure:"REDIS_URL" required:"true"`
	// KeyPrefix namespaces every key this service writes.
	KeyPrefix string `mapstructure:"REDIS_KEY_PREFIX" default:"clearance"`
	// MutationMaxRetries bounds optimistic retries of one shipment update.
	MutationMaxRetries int `mapstructure:"MUTATION_MAX_RETRIES" default:"10"`
}

// AdminConfig is the single shared credential guarding the admin API.
type AdminConfig struct {
	Username string `mapstructure:"ADMIN_USERNAME" required:"true"`
	Password string `mapstructure:"ADMIN_PASSWORD" required:"true"`
}

// TrackingConfig controls tracking code generation and the public lookup cache.
type TrackingConfig struct {
	// IDPrefix is the leading segment of generated tracking codes.
	IDPrefix string `mapstructure:"TRACKING_ID_PREFIX" default:"SCS"`
	// MaxCreateAttempts is how many suffixes Create tries before giving up on a collision.
	MaxCreateAttempts int `mapstructure:"TRACKING_ID_MAX_ATTEMPTS" default:"5"`
	// CacheTTLSeconds is how long a tracking lookup is served from cache. 0 disables caching.
	CacheTTLSeconds int `mapstructure:"TRACKING_CACHE_TTL_SECONDS" default:"30"`
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (t TrackingConfig) CacheTTL() time.Duration {
	return time.Duration(t.CacheTTLSeconds) * time.Second
}

// MetricsConfig selects the OpenTelemetry metric exporter: "none" or "stdout".
type MetricsConfig struct {
	Exporter string `mapstructure:"METRICS_EXPORTER" default:"none"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if config.Metrics.Exporter != "none" && config.Metrics.Exporter != "stdout" {
		return nil, fmt.Errorf("invalid METRICS_EXPORTER %q: must be none or stdout", config.Metrics.Exporter)
	}
	if config.Tracking.MaxCreateAttempts < 1 {
		return nil, fmt.Errorf("TRACKING_ID_MAX_ATTEMPTS must be >= 1")
	}
	if config.Tracking.CacheTTLSeconds < 0 {
		return nil, fmt.Errorf("TRACKING_CACHE_TTL_SECONDS must be >= 0")
	}

	return &config, nil
}

// processTags iterates over the struct fields, binds their env keys and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("bind env %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
