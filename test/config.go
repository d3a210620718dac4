package test

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_ADVISOR_HOST points the scenario at a live Ollama daemon.
	// Left empty, the advisor is unreachable and the scenario exercises
	// the deterministic round-robin fallback instead.
	AdvisorHost    string        `envconfig:"E2E_ADVISOR_HOST"`
	AdvisorModel   string        `envconfig:"E2E_ADVISOR_MODEL" default:"mistral:latest"`
	AdvisorTimeout time.Duration `envconfig:"E2E_ADVISOR_TIMEOUT" default:"2s"`
	CensoredWords  string        `envconfig:"E2E_CENSORED_WORDS" default:"confidential"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
