package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"riderdispatch/internal/jobs"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort         = "8080"
	defaultDispatchFanout   = 3
	defaultDispatchBatch    = 20
	defaultOrderEventsTopic = "order.changed"
)

var ErrJWTSecretIsRequired = errors.New("JWT_SECRET is required")

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	JWTSecret              string
	KafkaHost              string
	KafkaOrderChangedTopic string
	DispatchSchedule       string
	DispatchFanout         int
	DispatchBatch          int
}

var loadDotEnv = sync.OnceFunc(func() {
	// the file is optional; real deployments pass plain environment variables
	_ = godotenv.Load(".env")
})

// LoadConfig reads the service configuration from the environment, after
// loading .env when present.
func LoadConfig() (Config, error) {
	loadDotEnv()

	fanout, err := intVariable("DISPATCH_FANOUT", defaultDispatchFanout)
	if err != nil {
		return Config{}, err
	}
	batch, err := intVariable("DISPATCH_BATCH", defaultDispatchBatch)
	if err != nil {
		return Config{}, err
	}

	config := Config{
		HTTPPort:               variable("HTTP_PORT", defaultHTTPPort),
		DBHost:                 variable("DB_HOST", "localhost"),
		DBPort:                 variable("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              variable("DB_SSLMODE", "disable"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: variable("KAFKA_ORDER_CHANGED_TOPIC", defaultOrderEventsTopic),
		DispatchSchedule:       variable("DISPATCH_SCHEDULE", jobs.DefaultDispatchSchedule),
		DispatchFanout:         fanout,
		DispatchBatch:          batch,
	}
	if config.JWTSecret == "" {
		return Config{}, ErrJWTSecretIsRequired
	}
	return config, nil
}

// DSN is the libpq connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func variable(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intVariable(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}
