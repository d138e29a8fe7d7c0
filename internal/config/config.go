// Package config loads quizmark.yaml and environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory when no
// path is given.
const FileName = "quizmark.yaml"

type Config struct {
	Markup  MarkupConfig  `yaml:"markup"`
	Grading GradingConfig `yaml:"grading"`
	Take    TakeConfig    `yaml:"take"`
	Server  ServerConfig  `yaml:"server"`
	Events  EventsConfig  `yaml:"events"`
	Logging LoggingConfig `yaml:"logging"`
}

type MarkupConfig struct {
	QuestionPrefix string `yaml:"question_prefix"`
}

type GradingConfig struct {
	CaseSensitive bool `yaml:"case_sensitive"`
}

type TakeConfig struct {
	Watch         bool          `yaml:"watch"`
	WatchInterval time.Duration `yaml:"watch_interval"`
	NoColor       bool          `yaml:"no_color"`
}

type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
	Mode         string   `yaml:"mode"`
}

// EventsConfig enables graded-event publishing when URL is set.
type EventsConfig struct {
	URL      string `yaml:"amqp_url"`
	Exchange string `yaml:"exchange"`
}

func (e EventsConfig) Enabled() bool {
	return e.URL != ""
}

type LoggingConfig struct {
	RollbarToken string `yaml:"rollbar_token"`
	Environment  string `yaml:"environment"`
	Verbose      bool   `yaml:"verbose"`
}

func Default() Config {
	return Config{
		Markup: MarkupConfig{QuestionPrefix: "[!num]"},
		Take:   TakeConfig{WatchInterval: 500 * time.Millisecond},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			AllowOrigins: []string{"http://localhost:3000"},
			Mode:         "release",
		},
		Events:  EventsConfig{Exchange: "quiz.events"},
		Logging: LoggingConfig{Environment: "development"},
	}
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Load reads the config at path. An empty path looks for FileName in the
// working directory and falls back to defaults when it is absent.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Resolve loads .env, the config file and environment overrides, then
// validates the result.
func Resolve(path string) (Config, error) {
	if _, err := LoadEnvFile(); err != nil {
		return Config{}, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	var errs []error
	if cfg.Markup.QuestionPrefix == "" {
		errs = append(errs, errors.New("markup.question_prefix must not be empty"))
	}
	if cfg.Take.WatchInterval <= 0 {
		errs = append(errs, errors.New("take.watch_interval must be positive"))
	}
	if cfg.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	switch cfg.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", cfg.Server.Mode))
	}
	if cfg.Events.Enabled() && cfg.Events.Exchange == "" {
		errs = append(errs, errors.New("events.exchange is required when events.amqp_url is set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
