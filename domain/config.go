package domain

// WorkshopConfig describes a workshop: its name, topic and the ordered
// list of people attending. It is immutable once a session is Running.
type WorkshopConfig struct {
	Name         string
	Topic        string
	Prompt       string
	Participants []*Participant
	// Warnings collected while the config was assembled, e.g. a missing
	// facilitator that had to be promoted from the participant list.
	Warnings []string
}

// EmptyConfig backs a session created with /new before any file is loaded.
func EmptyConfig(name string) WorkshopConfig {
	return WorkshopConfig{Name: name}
}
