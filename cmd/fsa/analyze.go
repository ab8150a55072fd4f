package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/fsa"
	"github.com/aretw0/fsa/internal/presentation/report"
	"github.com/aretw0/fsa/internal/presentation/tui"
	"github.com/aretw0/fsa/pkg/domain"
	"github.com/aretw0/fsa/pkg/schema"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Run every structural analysis on a definition",
	Long: `Loads a JSON or YAML definition, runs reachability, co-reachability,
blocking, trim, dead and reversibility analyses and prints the report.
The report is also saved in the configured store under --name.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := analyzeOptions{Path: args[0]}
		opts.Name, _ = cmd.Flags().GetString("name")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.SingleSeed, _ = cmd.Flags().GetBool("single-seed")
		opts.Pretty = term.IsTerminal(int(os.Stdout.Fd()))

		analyzer, closeStore, err := newAnalyzer(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer closeStore()

		if err := runAnalyze(cmd.Context(), os.Stdout, analyzer, opts); err != nil {
			fmt.Printf("Analysis failed: %v\n", err)
			closeStore()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("format", "f", "text", "Output format: text, json, markdown or html")
	analyzeCmd.Flags().String("name", "", "Report name (default: file name without extension)")
	analyzeCmd.Flags().Bool("single-seed", false, "Also list the states reachable from the first initial state alone")
}

type analyzeOptions struct {
	Path       string
	Name       string
	Format     string
	SingleSeed bool
	// Pretty renders markdown for the terminal.
	Pretty bool
}

// seededReport adds the single-seed reachability set to the JSON output.
type seededReport struct {
	*domain.Report
	ReachableFromFirstInitial []string `json:"reachable_from_first_initial,omitempty"`
}

func reportName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func runAnalyze(ctx context.Context, w io.Writer, analyzer *fsa.Analyzer, opts analyzeOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	switch opts.Format {
	case "", "text", "json", "markdown", "html":
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
	def, err := schema.ReadFile(opts.Path)
	if err != nil {
		return err
	}
	a, err := def.Build()
	if err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		name = reportName(opts.Path)
	}
	r, err := analyzer.Analyze(ctx, name, a)
	if err != nil {
		return err
	}

	var seeded []string
	if opts.SingleSeed {
		states, err := a.ReachabilityFromFirstInitial()
		if err != nil {
			return err
		}
		seeded = make([]string, 0, len(states))
		for _, s := range states {
			seeded = append(seeded, s.Label())
		}
	}
	seedLine := fmt.Sprintf("reachable from first initial state: %s\n", strings.Join(seeded, ", "))

	switch opts.Format {
	case "", "text":
		fmt.Fprint(w, report.Text(r))
		if opts.SingleSeed {
			fmt.Fprintf(w, "\n%s", seedLine)
		}
	case "json":
		data, err := json.MarshalIndent(seededReport{Report: r, ReachableFromFirstInitial: seeded}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	case "markdown":
		md := report.Markdown(r)
		if opts.SingleSeed {
			md += "\n" + seedLine
		}
		if opts.Pretty {
			if rendered, err := tui.NewRenderer()(md); err == nil {
				md = rendered
			}
		}
		fmt.Fprint(w, md)
	case "html":
		return report.WritePage(w, r, nil)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
	return nil
}
