package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and endpoints, ints for the
// hour window of the availability grid.
type Config struct {
    Env         string // application environment (e.g. "dev", "prod")
    Port        string // HTTP port to listen on
    DBUser      string // database username
    DBPass      string // database password (optional)
    DBHost      string // database host address
    DBPort      string // database port number
    DBName      string // database name
    FeedBaseURL string // base URL of the external reservation feed
    GridFirst   int    // first hour materialized in the availability grid
    GridLast    int    // last hour materialized in the availability grid
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The feed URL and
// hour window have production defaults.
func Load() Config {
    cfg := Config{
        Env:         must("APP_ENV"),      // environment (dev/test/prod)
        Port:        must("APP_PORT"),     // port to bind the HTTP server
        DBUser:      must("DB_USER"),      // database user
        DBPass:      os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:      must("DB_HOST"),      // database host
        DBPort:      must("DB_PORT"),      // database port
        DBName:      must("DB_NAME"),      // database name
        FeedBaseURL: os.Getenv("FEED_BASE_URL"),
        GridFirst:   intOr("GRID_FIRST_HOUR", 8),
        GridLast:    intOr("GRID_LAST_HOUR", 23),
    }
    if cfg.GridFirst < 0 || cfg.GridLast > 23 || cfg.GridFirst > cfg.GridLast {
        log.Fatalf("invalid grid hour window: %d..%d", cfg.GridFirst, cfg.GridLast)
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

// intOr retrieves an optional integer environment variable, falling back
// to def when unset.  A set but non-numeric value is fatal.
func intOr(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
