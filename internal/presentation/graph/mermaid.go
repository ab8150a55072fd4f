package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsa/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the automaton.
// It applies semantic styling:
// - Initial: ((Circle))
// - Final: (((Double circle)))
// - Default: ("Rounded")
// Fault transitions are dotted. When a report is given, blocking,
// unreachable and dead states are styled after its annotations.
func GenerateMermaid(a *domain.Automaton, overlay *domain.Report) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	ids := mermaidIDs(a.States())
	for _, s := range a.States() {
		safeID := ids[s.Label()]

		opener, closer := "(", ")"
		switch {
		case s.IsFinal():
			opener, closer = "(((", ")))"
		case s.IsInitial():
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(s.Label()), closer))
	}

	for _, t := range a.Transitions() {
		from := ids[t.Start.Label()]
		to := ids[t.End.Label()]
		label := escapeLabel(eventLabel(t.Event))

		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if t.Event.IsFault() {
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow, to))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text for contrast regardless of theme.
		sb.WriteString("    classDef blocking fill:#ffcdd2,stroke:#b71c1c,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef unreachable fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4,color:#000;\n")
		sb.WriteString("    classDef dead fill:#ffe0b2,stroke:#e65100,color:#000;\n")

		for _, sr := range overlay.StateReports {
			id, ok := ids[sr.Label]
			if !ok {
				continue
			}
			if class := overlayClass(sr); class != "" {
				sb.WriteString(fmt.Sprintf("    class %s %s;\n", id, class))
			}
		}
	}

	return sb.String()
}

// overlayClass picks the most severe annotation of a state.
func overlayClass(sr domain.StateReport) string {
	switch {
	case sr.Blocking.Bool():
		return "blocking"
	case sr.Reachable == domain.False:
		return "unreachable"
	case sr.Dead.Bool():
		return "dead"
	default:
		return ""
	}
}

// eventLabel marks unobservable events with parentheses and
// uncontrollable ones with a trailing "!".
func eventLabel(e *domain.Event) string {
	label := e.Label()
	if !e.IsControllable() {
		label += "!"
	}
	if !e.IsObservable() {
		label = "(" + label + ")"
	}
	return label
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

// mermaidIDs assigns every state a distinct node ID. Labels that sanitize
// to a taken ID get a numeric suffix, in state order.
func mermaidIDs(states []*domain.State) map[string]string {
	ids := make(map[string]string, len(states))
	taken := make(map[string]bool, len(states))
	for _, s := range states {
		base := sanitizeMermaidID(s.Label())
		id := base
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		taken[id] = true
		ids[s.Label()] = id
	}
	return ids
}

func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	// Mermaid reserves "end" as a keyword.
	if s := sb.String(); strings.EqualFold(s, "end") {
		return s + "_"
	}
	return sb.String()
}
