package domain

// Command is a facilitator instruction applied to the live session.
// Dispatch is strictly sequential: one command is fully applied before
// the next is accepted.
type Command interface {
	Name() string
}

type NewSessionCommand struct {
	SessionName string
}

func (NewSessionCommand) Name() string { return "new" }

type LoadConfigCommand struct {
	File string
}

func (LoadConfigCommand) Name() string { return "load" }

type StartCommand struct{}

func (StartCommand) Name() string { return "start" }

type SayCommand struct {
	Content string
}

func (SayCommand) Name() string { return "say" }

// NextCommand advances the speaker. Turns defaults to 1. A non-empty
// Nominee bypasses the advisor and nominates by name prefix.
type NextCommand struct {
	Turns   int
	Nominee string
}

func (NextCommand) Name() string { return "next" }

type EndSessionCommand struct{}

func (EndSessionCommand) Name() string { return "endsession" }

type ShowCommand struct{}

func (ShowCommand) Name() string { return "show" }

type ViewTranscriptCommand struct{}

func (ViewTranscriptCommand) Name() string { return "view_transcript" }

type SummarizeCommand struct{}

func (SummarizeCommand) Name() string { return "summarize" }

type DeactivateCommand struct {
	Participant string
}

func (DeactivateCommand) Name() string { return "deactivate" }

// The commands below target external collaborators (config store,
// search index) rather than the live session; they are valid in any
// phase.

type ListConfigsCommand struct{}

func (ListConfigsCommand) Name() string { return "list" }

type RemoveConfigCommand struct {
	Index int
}

func (RemoveConfigCommand) Name() string { return "remove" }

type SearchCommand struct {
	Terms string
}

func (SearchCommand) Name() string { return "search" }
