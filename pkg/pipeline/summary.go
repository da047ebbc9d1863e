package pipeline

import "github.com/matzehuels/seqdiag/pkg/seq/diagram"

// Summary is the structural view of a parsed diagram reported by
// "seqdiag parse" and the server's /parse endpoint.
type Summary struct {
	Title        string               `json:"title,omitempty" yaml:"title,omitempty"`
	Participants []ParticipantSummary `json:"participants" yaml:"participants"`
	Events       []EventSummary       `json:"events" yaml:"events"`
	Messages     int                  `json:"messages" yaml:"messages"`
	Warnings     []diagram.Warning    `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ParticipantSummary describes one lane.
type ParticipantSummary struct {
	Name      string `json:"name" yaml:"name"`
	Label     string `json:"label" yaml:"label"`
	Kind      string `json:"kind" yaml:"kind"`
	Destroyed bool   `json:"destroyed,omitempty" yaml:"destroyed,omitempty"`
}

// EventSummary names one event and the source line it came from.
type EventSummary struct {
	Type string `json:"type" yaml:"type"`
	Line int    `json:"line" yaml:"line"`
}

// Summarize builds the summary of d.
func Summarize(d *diagram.Diagram) Summary {
	s := Summary{
		Title:        d.Title(),
		Participants: make([]ParticipantSummary, 0, d.Participants.Len()),
		Events:       make([]EventSummary, 0, len(d.Events)),
		Messages:     d.MessageCount(),
		Warnings:     d.Warnings,
	}
	for _, p := range d.Participants.All() {
		s.Participants = append(s.Participants, ParticipantSummary{
			Name:      p.Name,
			Label:     p.Label,
			Kind:      p.Kind.String(),
			Destroyed: p.Destroyed,
		})
	}
	for _, ev := range d.Events {
		s.Events = append(s.Events, EventSummary{Type: diagram.TypeName(ev), Line: ev.SourceLine()})
	}
	return s
}
