package internal

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	OllamaHost     string        `env:"OLLAMA_HOST,default=http://localhost:11434"`
	OllamaModel    string        `env:"OLLAMA_MODEL,default=mistral:latest"`
	AdvisorTimeout time.Duration `env:"ADVISOR_TIMEOUT,default=30s"`
	ContextWindow  int           `env:"CONTEXT_WINDOW,default=20"`

	BadgerFilepath string `env:"BADGER_FILEPATH,default=data/badger"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,default=data/bluge"`
	ConfigDir      string `env:"CONFIG_DIR,default=configs"`
	LogLevel       string `env:"LOG_LEVEL,default=INFO"`

	CensoredWords   string `env:"CENSORED_WORDS"`
	CharReplacement string `env:"CHARACTER_REPLACEMENT,default=*"`
}

// CensoredWordList splits the comma separated CENSORED_WORDS value.
func (c Config) CensoredWordList() []string {
	if strings.TrimSpace(c.CensoredWords) == "" {
		return nil
	}
	parts := strings.Split(c.CensoredWords, ",")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if w := strings.TrimSpace(p); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
