package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings are only consulted when the
// catalog is loaded from MySQL.
type Config struct {
	Env              string        // application environment (e.g. "dev", "production")
	Port             string        // HTTP port to listen on
	LogLevel         string        // zerolog level name
	SessionSecret    string        // secret used to sign session tokens
	SessionTTL       time.Duration // idle lifetime of an application session
	TokenTTL         time.Duration // lifetime of a session token, renewed on every use
	CatalogSource    string        // "static" (compiled-in menu) or "mysql"
	DBUser           string        // database username
	DBPass           string        // database password (optional)
	DBHost           string        // database host address
	DBPort           string        // database port number
	DBName           string        // database name
	ReservationDelay time.Duration // simulated latency of a reservation submit
	DeliveryDelay    time.Duration // simulated latency of a delivery submit
	BookingConsumer  bool          // run the booking.confirmed log consumer in-process
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		LogLevel:         envStr("LOG_LEVEL", "info"),
		SessionSecret:    must("SESSION_SECRET"),
		SessionTTL:       time.Duration(mustIntOr("SESSION_TTL_MIN", 120)) * time.Minute,
		TokenTTL:         time.Duration(mustIntOr("SESSION_TOKEN_TTL_MIN", 24*60)) * time.Minute,
		CatalogSource:    envStr("CATALOG_SOURCE", "static"),
		ReservationDelay: envDur("RESERVATION_SUBMIT_DELAY", 1500*time.Millisecond),
		DeliveryDelay:    envDur("DELIVERY_SUBMIT_DELAY", 2000*time.Millisecond),
		BookingConsumer:  envBool("BOOKING_CONSUMER", false),
	}
	// A token must never expire before the idle session it names.
	if cfg.TokenTTL < cfg.SessionTTL {
		cfg.TokenTTL = cfg.SessionTTL
	}
	if cfg.CatalogSource == "mysql" {
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}
	return cfg
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

// mustIntOr returns def when key is unset and exits on a malformed value.
func mustIntOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
