package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/fsa/pkg/domain"
)

var dotFill = map[string]string{
	"blocking":    "#ffcdd2",
	"unreachable": "#eeeeee",
	"dead":        "#ffe0b2",
}

// GenerateDot produces a Graphviz digraph of the automaton. Initial states
// get an arrow from an invisible point, final states a double circle.
func GenerateDot(a *domain.Automaton, overlay *domain.Report) string {
	var sb strings.Builder
	sb.WriteString("digraph fsa {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=circle];\n")

	classes := map[string]string{}
	if overlay != nil {
		for _, sr := range overlay.StateReports {
			classes[sr.Label] = overlayClass(sr)
		}
	}

	for i, s := range a.States() {
		id := strconv.Quote(s.Label())
		var attrs []string
		if s.IsFinal() {
			attrs = append(attrs, "shape=doublecircle")
		}
		if fill, ok := dotFill[classes[s.Label()]]; ok {
			attrs = append(attrs, "style=filled", fmt.Sprintf("fillcolor=%q", fill))
		}
		if len(attrs) > 0 {
			sb.WriteString(fmt.Sprintf("    %s [%s];\n", id, strings.Join(attrs, ", ")))
		} else {
			sb.WriteString(fmt.Sprintf("    %s;\n", id))
		}
		if s.IsInitial() {
			sb.WriteString(fmt.Sprintf("    __init%d [shape=point];\n", i))
			sb.WriteString(fmt.Sprintf("    __init%d -> %s;\n", i, id))
		}
	}

	for _, t := range a.Transitions() {
		attrs := fmt.Sprintf("label=%s", strconv.Quote(eventLabel(t.Event)))
		if t.Event.IsFault() {
			attrs += ", style=dashed"
		}
		sb.WriteString(fmt.Sprintf("    %s -> %s [%s];\n",
			strconv.Quote(t.Start.Label()), strconv.Quote(t.End.Label()), attrs))
	}

	sb.WriteString("}\n")
	return sb.String()
}
