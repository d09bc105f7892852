// SPDX-License-Identifier: EPL-2.0

// Package config loads the wavcue command configuration from command-line
// flags and WAVCUE_* environment variables.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "WAVCUE_"

// Defaults.
const (
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "pretty"
	DefaultBufferSize = 64 << 10
)

// ErrHelp is returned by Load when -h or -help was requested.
var ErrHelp = flag.ErrHelp

// Config holds the command configuration.
type Config struct {
	Logger      LoggerConfig
	BufferSize  int `validate:"min=512,max=67108864"`
	Concurrency int `validate:"min=0,max=1024"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level     string `validate:"oneof=debug info warn warning error"`
	Format    string `validate:"oneof=pretty json"`
	AddSource bool
	NoColor   bool
}

var validate = validator.New()

// Validate checks that all config values are in range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: %v", strings.ToLower(fe.Field()), fe.Value())
		}
		return err
	}
	return nil
}

// Load parses the global flags in args and returns the configuration and the
// arguments left after the flags. Precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables looked up through getenv.
// 3. Default values (lowest priority).
//
// A nil getenv uses os.Getenv.
func Load(name string, args []string, getenv func(string) string, output io.Writer) (*Config, []string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Log format (pretty, json)")
	logSource := fs.Bool("log-source", false, "Add source file and line to log records")
	noColor := fs.Bool("no-color", false, "Disable colored log output")
	bufferSize := fs.String("buffer-size", "", "Copy and decode buffer size in bytes")
	concurrency := fs.String("concurrency", "", "Files processed at once (0 = number of CPUs)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	// Bool flags only take part in the precedence when given explicitly.
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	boolFlag := func(name string, v bool) string {
		if !set[name] {
			return ""
		}
		return strconv.FormatBool(v)
	}

	l := loader{getenv: getenv}
	cfg := &Config{
		Logger: LoggerConfig{
			Level:     strings.ToLower(l.value(*logLevel, "LOG_LEVEL", DefaultLogLevel)),
			Format:    strings.ToLower(l.value(*logFormat, "LOG_FORMAT", DefaultLogFormat)),
			AddSource: l.boolValue(boolFlag("log-source", *logSource), "LOG_SOURCE", false),
			NoColor:   l.boolValue(boolFlag("no-color", *noColor), "NO_COLOR", false),
		},
	}

	var err error
	if cfg.BufferSize, err = l.intValue(*bufferSize, "BUFFER_SIZE", DefaultBufferSize); err != nil {
		return nil, nil, err
	}
	if cfg.Concurrency, err = l.intValue(*concurrency, "CONCURRENCY", 0); err != nil {
		return nil, nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, fs.Args(), nil
}

type loader struct {
	getenv func(string) string
}

// value returns the first non-empty value from flag, env var, or default.
func (l loader) value(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := l.getenv(EnvPrefix + envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// boolValue accepts "true", "1", "yes" (case-insensitive) as true.
func (l loader) boolValue(flagValue, envKey string, defaultValue bool) bool {
	s := l.value(flagValue, envKey, "")
	if s == "" {
		return defaultValue
	}
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes"
}

func (l loader) intValue(flagValue, envKey string, defaultValue int) (int, error) {
	s := l.value(flagValue, envKey, "")
	if s == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(strings.ReplaceAll(envKey, "_", " ")), s, err)
	}
	return n, nil
}
