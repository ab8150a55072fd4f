// Package report renders analysis reports as text, Markdown and HTML.
package report

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/aretw0/fsa/pkg/domain"
	md "github.com/russross/blackfriday/v2"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func mark(t domain.Tristate) string {
	switch t {
	case domain.True:
		return "✓"
	case domain.False:
		return "✗"
	default:
		return "?"
	}
}

func title(r *domain.Report) string {
	if r.Name == "" {
		return "Automaton"
	}
	return r.Name
}

func joinOrNone(labels []string) string {
	if len(labels) == 0 {
		return "none"
	}
	return strings.Join(labels, ", ")
}

// Text renders a compact plain-text summary.
func Text(r *domain.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (revision %d)\n", title(r), r.Revision)
	fmt.Fprintf(&sb, "states: %d  events: %d  transitions: %d\n\n", r.States, r.Events, r.Transitions)

	for _, row := range []struct {
		name  string
		value bool
	}{
		{"reachable", r.Reachable},
		{"co-reachable", r.CoReachable},
		{"blocking", r.Blocking},
		{"trim", r.Trim},
		{"reversible", r.Reversible},
	} {
		fmt.Fprintf(&sb, "%-14s%s\n", row.name, yesNo(row.value))
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%-14s%s\n", "blocking:", joinOrNone(r.BlockingStates()))
	fmt.Fprintf(&sb, "%-14s%s\n", "unreachable:", joinOrNone(r.UnreachableStates()))
	fmt.Fprintf(&sb, "%-14s%s\n", "dead:", joinOrNone(r.DeadStates()))
	return sb.String()
}

// Markdown renders the report with a property table and a per-state table.
func Markdown(r *domain.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title(r))
	fmt.Fprintf(&sb, "Revision %d: %d states, %d events, %d transitions.\n\n",
		r.Revision, r.States, r.Events, r.Transitions)

	sb.WriteString("| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Reachable | %s |\n", yesNo(r.Reachable))
	fmt.Fprintf(&sb, "| Co-reachable | %s |\n", yesNo(r.CoReachable))
	fmt.Fprintf(&sb, "| Blocking | %s |\n", yesNo(r.Blocking))
	fmt.Fprintf(&sb, "| Trim | %s |\n", yesNo(r.Trim))
	fmt.Fprintf(&sb, "| Reversible | %s |\n\n", yesNo(r.Reversible))

	if len(r.StateReports) == 0 {
		return sb.String()
	}

	sb.WriteString("## States\n\n")
	sb.WriteString("| State | Initial | Final | Reachable | Co-reachable | Blocking | Dead | Returns to x0 |\n")
	sb.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, s := range r.StateReports {
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s | %s | %s | %s | %s |\n",
			s.Label,
			mark(domain.TristateOf(s.Initial)),
			mark(domain.TristateOf(s.Final)),
			mark(s.Reachable),
			mark(s.CoReachable),
			mark(s.Blocking),
			mark(s.Dead),
			mark(s.CoReachableToInitial),
		)
	}
	return sb.String()
}

// HTML renders the Markdown report into an HTML fragment. Raw HTML in
// labels is dropped.
func HTML(r *domain.Report) []byte {
	renderer := md.NewHTMLRenderer(md.HTMLRendererParameters{
		Flags: md.CommonHTMLFlags | md.SkipHTML,
	})
	return md.Run([]byte(Markdown(r)),
		md.WithExtensions(md.CommonExtensions),
		md.WithRenderer(renderer),
	)
}

// WritePage writes a standalone HTML page for the report.
func WritePage(out io.Writer, r *domain.Report, cssFiles []string) error {
	name := html.EscapeString(title(r))
	if _, err := fmt.Fprintf(out, `<!DOCTYPE html>
<html>
  <head>
  <meta charset="utf-8">
  <title>%s</title>
`, name); err != nil {
		return err
	}
	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", html.EscapeString(cssFile))
	}
	fmt.Fprintf(out, "  </head>\n  <body>\n<div class=\"report\">%s</div>\n", HTML(r))
	_, err := fmt.Fprintf(out, "  </body>\n</html>\n")
	return err
}
