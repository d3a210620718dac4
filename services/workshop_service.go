// Package services routes parsed facilitator commands to the engine
// or to the external collaborators (config store, search index) and
// shapes rendering-agnostic responses for the UI.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"workshop-lab/configstore"
	"workshop-lab/domain"
	apperrors "workshop-lab/errors"
	"workshop-lab/engine"
	"workshop-lab/repositories"
)

const searchLimit = 10

// Response carries everything a command produced; the REPL decides how
// to render each part.
type Response struct {
	Feedback []string
	Entries  []domain.TranscriptEntry
	Config   *domain.WorkshopConfig
	Files    []string
	Hits     []repositories.DiskEntry
}

func feedback(format string, args ...any) Response {
	return Response{Feedback: []string{fmt.Sprintf(format, args...)}}
}

type WorkshopService struct {
	engine *engine.Engine
	store  *configstore.Store
	repo   repositories.ITranscriptRepository
	log    *slog.Logger
}

func NewWorkshopService(e *engine.Engine, store *configstore.Store, repo repositories.ITranscriptRepository, log *slog.Logger) *WorkshopService {
	return &WorkshopService{engine: e, store: store, repo: repo, log: log}
}

// Execute parses and applies one command line. Commands are applied one
// at a time, fully, before the next line is read; failed commands leave
// the session untouched.
func (s *WorkshopService) Execute(ctx context.Context, line string) (Response, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return Response{}, err
	}

	switch c := cmd.(type) {
	case domain.NewSessionCommand:
		return s.newSession(c)
	case domain.LoadConfigCommand:
		return s.load(c)
	case domain.ListConfigsCommand:
		return s.list()
	case domain.RemoveConfigCommand:
		return s.remove(c)
	case domain.ShowCommand:
		return s.show(), nil
	case domain.StartCommand:
		return s.start()
	case domain.SayCommand:
		return s.say(c)
	case domain.NextCommand:
		return s.next(ctx, c)
	case domain.EndSessionCommand:
		return s.endSession(ctx)
	case domain.ViewTranscriptCommand:
		return Response{Entries: s.engine.TranscriptEntries()}, nil
	case domain.SummarizeCommand:
		return s.summarize(ctx)
	case domain.SearchCommand:
		return s.search(ctx, c)
	case domain.DeactivateCommand:
		return s.deactivate(c)
	default:
		return Response{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownCommand, cmd.Name())
	}
}

func (s *WorkshopService) newSession(c domain.NewSessionCommand) (Response, error) {
	if err := s.engine.NewSession(c.SessionName); err != nil {
		return Response{}, err
	}
	return feedback("Session %q configured. Load participants or /start once ready.", c.SessionName), nil
}

func (s *WorkshopService) load(c domain.LoadConfigCommand) (Response, error) {
	config, err := s.store.Load(c.File)
	if err != nil {
		return Response{}, err
	}
	if err := s.engine.LoadSession(config, c.File); err != nil {
		return Response{}, err
	}
	resp := feedback("Configuration %q loaded with %d participants.", c.File, len(config.Participants))
	resp.Feedback = append(resp.Feedback, config.Warnings...)
	return resp, nil
}

func (s *WorkshopService) list() (Response, error) {
	files, err := s.store.List()
	if err != nil {
		return Response{}, err
	}
	return Response{Files: files}, nil
}

func (s *WorkshopService) remove(c domain.RemoveConfigCommand) (Response, error) {
	name, err := s.store.Remove(c.Index)
	if err != nil {
		return Response{}, err
	}
	return feedback("Removed configuration %q.", name), nil
}

func (s *WorkshopService) show() Response {
	config, ok := s.engine.Config()
	if !ok {
		return feedback("No session configured.")
	}
	return Response{Config: &config}
}

func (s *WorkshopService) start() (Response, error) {
	if err := s.engine.Start(); err != nil {
		return Response{}, err
	}
	return feedback("Workshop started. Use /next to proceed with turns."), nil
}

func (s *WorkshopService) say(c domain.SayCommand) (Response, error) {
	entry, err := s.engine.Say(c.Content)
	if err != nil {
		return Response{}, err
	}
	return feedback("%s (F) has spoken. Use /next to continue.", entry.Speaker), nil
}

func (s *WorkshopService) next(ctx context.Context, c domain.NextCommand) (Response, error) {
	speakers, err := s.engine.Next(ctx, c)
	if err != nil {
		return Response{}, err
	}
	var resp Response
	for _, speaker := range speakers {
		resp.Feedback = append(resp.Feedback,
			fmt.Sprintf("Next speaker: %s.", speaker.Name))
	}
	return resp, nil
}

func (s *WorkshopService) endSession(ctx context.Context) (Response, error) {
	summary, err := s.engine.EndSession(ctx)
	if err != nil {
		return Response{}, err
	}
	resp := feedback("Workshop session ended.")
	if summary != "" {
		resp.Feedback = append(resp.Feedback, "Final summary: "+summary)
	}
	return resp, nil
}

// summarize surfaces advisory failures as a non-fatal message instead
// of an error: the session keeps running, the transcript is unchanged.
func (s *WorkshopService) summarize(ctx context.Context) (Response, error) {
	summary, err := s.engine.Summarize(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrAdvisoryFailure) {
			s.log.Warn("Summary unavailable", "error", err)
			return feedback("Summary unavailable right now, the session continues."), nil
		}
		return Response{}, err
	}
	return feedback("Summary: %s", summary), nil
}

func (s *WorkshopService) search(ctx context.Context, c domain.SearchCommand) (Response, error) {
	hits, err := s.repo.Search(ctx, c.Terms, searchLimit)
	if err != nil {
		return Response{}, err
	}
	return Response{Hits: hits}, nil
}

func (s *WorkshopService) deactivate(c domain.DeactivateCommand) (Response, error) {
	if err := s.engine.Deactivate(c.Participant); err != nil {
		return Response{}, err
	}
	return feedback("Participant %q deactivated.", c.Participant), nil
}
