package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Every credential lives here and is injected
// from the environment; nothing in the source tree carries a secret
// literal.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	JWTSecret  string        // secret used to sign gateway session tokens
	SessionTTL time.Duration // lifetime of a gateway session

	UsersBaseURL        string // users/auth service root, e.g. http://users:8080/api
	RoomsBaseURL        string // rooms service root, e.g. http://rooms:8082/api
	ReservationsBaseURL string // reservations service root, e.g. http://reservations:8083/api
	BillingBaseURL      string // billing/payment service root, e.g. http://billing:8084/api

	ReservationsUser string // Basic-Auth username for the reservations service
	ReservationsPass string // Basic-Auth password for the reservations service
	BillingToken     string // long-lived bearer token for the billing service (optional)

	RequestTimeout time.Duration // per-request timeout for every service client
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:  must("APP_ENV"),
		Port: must("APP_PORT"),

		JWTSecret:  must("JWT_SECRET"),
		SessionTTL: dur("SESSION_TTL", 24*time.Hour),

		UsersBaseURL:        must("USERS_SERVICE_URL"),
		RoomsBaseURL:        must("ROOMS_SERVICE_URL"),
		ReservationsBaseURL: must("RESERVATIONS_SERVICE_URL"),
		BillingBaseURL:      must("BILLING_SERVICE_URL"),

		ReservationsUser: must("RESERVATIONS_BASIC_USER"),
		ReservationsPass: must("RESERVATIONS_BASIC_PASS"),
		BillingToken:     os.Getenv("BILLING_API_TOKEN"), // empty = unauthenticated billing calls

		RequestTimeout: dur("UPSTREAM_TIMEOUT", 10*time.Second),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func dur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}
