// Package configstore manages workshop configuration files on disk:
// listing, loading with validation, and removal. It holds no session
// state; the engine consumes its output wholesale.
package configstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"workshop-lab/domain"
	apperrors "workshop-lab/errors"
)

// Document is the on-disk YAML shape of a workshop configuration.
type Document struct {
	Workshop struct {
		Name   string `yaml:"name" validate:"required"`
		Topic  string `yaml:"topic"`
		Prompt string `yaml:"prompt"`
	} `yaml:"workshop" validate:"required"`
	Participants []ParticipantDoc `yaml:"participants" validate:"required,min=1,dive"`
}

type ParticipantDoc struct {
	Name          string `yaml:"name" validate:"required"`
	Role          string `yaml:"role" validate:"omitempty,oneof=participant facilitator"`
	Background    string `yaml:"background"`
	IsFacilitator bool   `yaml:"is_facilitator"`
}

// Validator is the structural-validation capability. The store ships a
// struct-tag implementation; callers may substitute stricter schemas.
type Validator interface {
	Validate(doc Document) error
}

type tagValidator struct {
	validate *validator.Validate
}

func (v tagValidator) Validate(doc Document) error {
	if err := v.validate.Struct(doc); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrConfigInvalid, err)
	}
	return nil
}

func NewValidator() Validator {
	return tagValidator{validate: validator.New()}
}

// Store reads workshop configs from a single directory.
type Store struct {
	dir       string
	validator Validator
}

func NewStore(dir string, v Validator) *Store {
	return &Store{dir: dir, validator: v}
}

// List returns the available config file names, sorted.
func (s *Store) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	return names, nil
}

// Load parses and validates a config file, producing the immutable
// WorkshopConfig the session is built from. A rejected document leaves
// no trace: the error wraps ErrConfigInvalid and nothing is returned.
func (s *Store) Load(file string) (domain.WorkshopConfig, error) {
	if !strings.HasSuffix(file, ".yaml") {
		file += ".yaml"
	}
	raw, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(file)))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.WorkshopConfig{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, file)
		}
		return domain.WorkshopConfig{}, err
	}

	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return domain.WorkshopConfig{}, fmt.Errorf("%w: %v", apperrors.ErrConfigInvalid, err)
	}
	if err := s.validator.Validate(doc); err != nil {
		return domain.WorkshopConfig{}, err
	}
	return toConfig(doc), nil
}

// Remove deletes the nth file of the current List (1-based).
func (s *Store) Remove(n int) (string, error) {
	names, err := s.List()
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(names) {
		return "", fmt.Errorf("%w: config #%d", apperrors.ErrNotFound, n)
	}
	name := names[n-1]
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

func toConfig(doc Document) domain.WorkshopConfig {
	participants := make([]*domain.Participant, 0, len(doc.Participants))
	for _, p := range doc.Participants {
		role := domain.RoleParticipant
		if p.IsFacilitator || p.Role == string(domain.RoleFacilitator) {
			role = domain.RoleFacilitator
		}
		participants = append(participants, domain.NewParticipant(p.Name, role, p.Background))
	}
	return domain.WorkshopConfig{
		Name:         doc.Workshop.Name,
		Topic:        doc.Workshop.Topic,
		Prompt:       doc.Workshop.Prompt,
		Participants: participants,
	}
}
