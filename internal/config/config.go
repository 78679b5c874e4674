package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/tabstrip/internal/app"
	"github.com/atomicstack/tabstrip/internal/content"
	"github.com/atomicstack/tabstrip/internal/state"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envWidth      = "TABSTRIP_WIDTH"
	envShowFooter = "TABSTRIP_FOOTER"
	envScrollStep = "TABSTRIP_SCROLL_STEP"
	envPolicy     = "TABSTRIP_POLICY"
	envOpen       = "TABSTRIP_OPEN"
	envTrace      = "TABSTRIP_TRACE"
	envLogFile    = "TABSTRIP_LOG_FILE"
)

const defaultScrollStep = 8

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tabstrip", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	width := fs.Int("width", envOrInt(env, envWidth, 0), "strip width in cells (0 uses terminal width)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "show key hints below the panes")
	step := fs.Int("scroll-step", envOrInt(env, envScrollStep, defaultScrollStep), "cells moved by one scroll intent")
	policy := fs.String("policy", envOrDefault(env, envPolicy, "strict"), "handling of unknown tab ids: strict or lenient")
	open := fs.String("open", envOrDefault(env, envOpen, ""), "comma-separated content kinds opened at startup (type-a,type-b,type-c)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *step <= 0 {
		return Config{}, fmt.Errorf("scroll-step must be > 0 (got %d)", *step)
	}
	parsedPolicy, err := state.ParsePolicy(*policy)
	if err != nil {
		return Config{}, err
	}
	kinds, err := parseKinds(*open)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Width:      *width,
			ShowFooter: *footer,
			ScrollStep: *step,
			Policy:     parsedPolicy,
			Open:       kinds,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"width":      strconv.Itoa(*width),
			"footer":     strconv.FormatBool(*footer),
			"scrollStep": strconv.Itoa(*step),
			"policy":     parsedPolicy.String(),
			"open":       *open,
			"trace":      strconv.FormatBool(*trace),
			"logFile":    *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseKinds(value string) ([]content.Kind, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var kinds []content.Kind
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		kind, err := content.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("open: %w", err)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects startup tabs the store would refuse.
func Validate(cfg Config) error {
	for _, kind := range cfg.App.Open {
		if kind == content.Home {
			return fmt.Errorf("open: %s cannot be opened as a tab", kind)
		}
	}
	return nil
}
