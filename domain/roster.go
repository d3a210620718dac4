package domain

import "strings"

// Roster maps workshop identities to their metadata. Membership is
// fixed at configuration load time; deactivation is the only mutation.
type Roster struct {
	members     []*Participant
	facilitator *Participant
}

// NewRoster splits the configured people into facilitator and speaking
// members, preserving configuration order. If nobody is flagged as
// facilitator, the first participant is promoted (original behaviour of
// the workshop tool) and the promotion is reported as a warning.
func NewRoster(people []*Participant) (*Roster, []string) {
	r := &Roster{}
	var warnings []string
	for _, p := range people {
		if p.IsFacilitator() && r.facilitator == nil {
			r.facilitator = p
			continue
		}
		r.members = append(r.members, p)
	}
	if r.facilitator == nil && len(r.members) > 0 {
		r.facilitator = r.members[0]
		r.facilitator.Role = RoleFacilitator
		r.members = r.members[1:]
		warnings = append(warnings,
			"no facilitator defined, promoted "+r.facilitator.Name)
	}
	return r, warnings
}

func (r *Roster) Facilitator() *Participant {
	return r.facilitator
}

// Members returns every speaking participant in insertion order,
// active or not. The facilitator is not part of the member list.
func (r *Roster) Members() []*Participant {
	return r.members
}

// ActiveParticipants returns active members in insertion order.
func (r *Roster) ActiveParticipants() []*Participant {
	var out []*Participant
	for _, p := range r.members {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

func (r *Roster) IsActive(name string) bool {
	p := r.Find(name)
	return p != nil && p.Active
}

// Find returns the member with the exact name (case-insensitive),
// or nil. The facilitator is not addressable through Find.
func (r *Roster) Find(name string) *Participant {
	for _, p := range r.members {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// FindByPrefix returns the first active member whose name starts with
// the given prefix (case-insensitive), or nil.
func (r *Roster) FindByPrefix(prefix string) *Participant {
	lowered := strings.ToLower(prefix)
	for _, p := range r.members {
		if p.Active && strings.HasPrefix(strings.ToLower(p.Name), lowered) {
			return p
		}
	}
	return nil
}

// Deactivate removes a member from the speaking rotation. It is
// idempotent and reports whether the name was known.
func (r *Roster) Deactivate(name string) bool {
	p := r.Find(name)
	if p == nil {
		return false
	}
	p.Active = false
	return true
}
