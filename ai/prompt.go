package ai

import (
	"fmt"
	"strings"

	"workshop-lab/domain"
)

// Prompts keep the bracketed block format of the original workshop
// tool; models tuned on it respond more reliably to explicit
// CONSTRAINTS sections than to free-form instructions.

func suggestionPrompt(workshop string, transcript []domain.TranscriptEntry, turn int, candidates []*domain.Participant) string {
	var b strings.Builder
	b.WriteString("[CONTEXT]\n")
	fmt.Fprintf(&b, "You are an AI assistant helping to manage the workshop %q.\n", workshop)
	b.WriteString("The participants are:\n")
	for _, p := range candidates {
		fmt.Fprintf(&b, "- %s (quiet for %d turns)\n", p.Bio(true), p.TurnsSinceLastContribution(turn))
	}
	b.WriteString("Here is the transcript so far:\n")
	writeTranscript(&b, transcript)
	b.WriteString("[/CONTEXT]\n[INSTRUCTIONS]\n")
	b.WriteString("Based on the conversation flow and content, suggest which participant should speak next.\n")
	b.WriteString("Consider factors like:\n")
	b.WriteString("- Who was asked a direct question\n")
	b.WriteString("- Who might have relevant expertise for the current topic\n")
	b.WriteString("- Who hasn't spoken in a while\n")
	b.WriteString("[/INSTRUCTIONS]\n[CONSTRAINTS]\n")
	names := make([]string, len(candidates))
	for i, p := range candidates {
		names[i] = p.Name
	}
	fmt.Fprintf(&b, "- Suggested participant must be one of: %s\n", strings.Join(names, ", "))
	b.WriteString("- Suggested participant must not be the facilitator\n")
	b.WriteString("- Suggested participant must not be the current speaker\n")
	b.WriteString("- Only respond in the format: 'Next speaker: Participant Name'\n")
	b.WriteString("- Any other response format will fail.\n")
	b.WriteString("[/CONSTRAINTS]\n")
	return b.String()
}

func summaryPrompt(entries []domain.TranscriptEntry) string {
	var b strings.Builder
	b.WriteString("[TASK]\n")
	b.WriteString("Compress the following content, the goal is to reduce tokens, without losing information.\n")
	b.WriteString("[/TASK]\n[GUIDANCE]\n")
	b.WriteString("Prioritise key predicates, ideas, insights, and conclusions.\n")
	b.WriteString("Discard irrelevant information.\n")
	b.WriteString("[/GUIDANCE]\n[CONTENT]\n")
	writeTranscript(&b, entries)
	b.WriteString("[/CONTENT]\n")
	return b.String()
}

func writeTranscript(b *strings.Builder, entries []domain.TranscriptEntry) {
	for _, e := range entries {
		fmt.Fprintf(b, "%s: %s\n", e.Speaker, e.Content)
	}
}
