// Package domain contains core concepts of the workshop engine.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleParticipant Role = "participant"
	RoleFacilitator Role = "facilitator"
)

// Participant is a member of the workshop roster.
// Membership is fixed once a configuration is loaded; the only
// supported mutation afterwards is deactivation.
type Participant struct {
	ID         uuid.UUID
	Name       string
	Role       Role
	Background string
	Active     bool

	Contributions int
	LastSpokeTurn int
}

func NewParticipant(name string, role Role, background string) *Participant {
	return &Participant{
		ID:         uuid.New(),
		Name:       name,
		Role:       role,
		Background: background,
		Active:     true,
	}
}

func (p *Participant) IsFacilitator() bool {
	return p.Role == RoleFacilitator
}

// RecordTurn updates speaking stats when the participant takes a turn.
func (p *Participant) RecordTurn(turn int) {
	p.Contributions++
	p.LastSpokeTurn = turn
}

// TurnsSinceLastContribution is fed to the advisor prompt so it can
// favour participants who have been quiet.
func (p *Participant) TurnsSinceLastContribution(currentTurn int) int {
	return currentTurn - p.LastSpokeTurn
}

func (p *Participant) Bio(full bool) string {
	if full && p.Background != "" {
		return p.Name + ", " + string(p.Role) + ". " + p.Background
	}
	return p.Name + ", " + string(p.Role)
}
