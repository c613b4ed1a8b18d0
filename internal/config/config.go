package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	UpstreamURL     string        `env:"UPSTREAM_URL" envDefault:"http://localhost:8081"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`
	SymbolRate      float64       `env:"SYMBOL_RATE" envDefault:"1"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	// Warnings lists values that could not be used and were replaced by defaults.
	Warnings []string
}

var keys = []string{"PORT", "UPSTREAM_URL", "UPSTREAM_TIMEOUT", "SYMBOL_RATE", "LOG_LEVEL"}

func Load() Config {
	return load(env.ToMap(os.Environ()))
}

func load(environ map[string]string) Config {
	var defaults Config
	_ = env.ParseWithOptions(&defaults, env.Options{Environment: map[string]string{}})

	// drop keys that fail to parse on their own, then parse the rest together
	usable := make(map[string]string, len(keys))
	var warnings []string
	for _, k := range keys {
		v, ok := environ[k]
		if !ok {
			continue
		}
		var single Config
		if err := env.ParseWithOptions(&single, env.Options{Environment: map[string]string{k: v}}); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s=%q invalid, using default", k, v))
			continue
		}
		usable[k] = v
	}

	cfg := defaults
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: usable}); err != nil {
		cfg = defaults
		warnings = append(warnings, err.Error())
	}
	if cfg.UpstreamTimeout <= 0 {
		warnings = append(warnings, fmt.Sprintf("UPSTREAM_TIMEOUT=%s must be positive, using %s", cfg.UpstreamTimeout, defaults.UpstreamTimeout))
		cfg.UpstreamTimeout = defaults.UpstreamTimeout
	}
	if !(cfg.SymbolRate > 0) {
		warnings = append(warnings, fmt.Sprintf("SYMBOL_RATE=%g must be positive, using %g", cfg.SymbolRate, defaults.SymbolRate))
		cfg.SymbolRate = defaults.SymbolRate
	}
	cfg.Warnings = warnings
	return cfg
}
