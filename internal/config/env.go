package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "QUIZMARK_"

// LoadEnvFile loads .env files into the process environment without
// overriding variables that are already set. A missing file is not an
// error; it reports whether anything was loaded.
func LoadEnvFile(paths ...string) (bool, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return false, nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return false, fmt.Errorf("load env file: %w", err)
	}
	return true, nil
}

// ApplyEnv overrides cfg from QUIZMARK_* variables read through getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	var errs []error
	str := func(name string, dst *string) {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) {
		v := getenv(envPrefix + name)
		if v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
			return
		}
		*dst = b
	}

	str("QUESTION_PREFIX", &cfg.Markup.QuestionPrefix)
	boolean("CASE_SENSITIVE", &cfg.Grading.CaseSensitive)
	boolean("WATCH", &cfg.Take.Watch)
	boolean("NO_COLOR", &cfg.Take.NoColor)
	if v := getenv(envPrefix + "WATCH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sWATCH_INTERVAL: %w", envPrefix, err))
		} else {
			cfg.Take.WatchInterval = d
		}
	}
	str("SERVER_ADDR", &cfg.Server.Addr)
	str("SERVER_MODE", &cfg.Server.Mode)
	if v := getenv(envPrefix + "ALLOW_ORIGINS"); v != "" {
		cfg.Server.AllowOrigins = splitList(v)
	}
	str("AMQP_URL", &cfg.Events.URL)
	str("AMQP_EXCHANGE", &cfg.Events.Exchange)
	str("ROLLBAR_TOKEN", &cfg.Logging.RollbarToken)
	str("ENV", &cfg.Logging.Environment)
	boolean("VERBOSE", &cfg.Logging.Verbose)

	return errors.Join(errs...)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
