package domain

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseConfigured Phase = "configured"
	PhaseRunning    Phase = "running"
	PhaseEnded      Phase = "ended"
)

// Session is the single live workshop of the process: current phase,
// loaded configuration, transcript and the current speaker pointer.
// It is created by /new or /load and destroyed by /endsession.
type Session struct {
	Phase          Phase
	Config         WorkshopConfig
	Transcript     *TranscriptLog
	Roster         *Roster
	CurrentSpeaker *Participant
	Turn           int
}

// NewSession builds a Configured session around a validated config.
// The roster may be empty; /start enforces the ≥1 active rule.
func NewSession(config WorkshopConfig) *Session {
	roster, warnings := NewRoster(config.Participants)
	config.Warnings = append(config.Warnings, warnings...)
	return &Session{
		Phase:      PhaseConfigured,
		Config:     config,
		Transcript: NewTranscriptLog(),
		Roster:     roster,
	}
}

// SetCurrentSpeaker moves the speaker pointer and updates the
// participant's stats. The caller guarantees eligibility.
func (s *Session) SetCurrentSpeaker(p *Participant) {
	s.Turn++
	s.CurrentSpeaker = p
	p.RecordTurn(s.Turn)
}
