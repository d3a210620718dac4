package errors

import "fmt"

var (
	ErrConfigInvalid     = fmt.Errorf("configuration rejected by validation")
	ErrEmptyRoster       = fmt.Errorf("roster has no active participant")
	ErrPhaseViolation    = fmt.Errorf("command not allowed in current phase")
	ErrNoEligibleSpeaker = fmt.Errorf("no eligible speaker")
	ErrNotFound          = fmt.Errorf("not found")
	ErrAdvisoryFailure   = fmt.Errorf("advisory call failed")
	ErrUnknownCommand    = fmt.Errorf("unknown command")
)
