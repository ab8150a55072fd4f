package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/fsa/internal/presentation/graph"
	"github.com/aretw0/fsa/pkg/domain"
	"github.com/aretw0/fsa/pkg/schema"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph FILE",
	Short: "Export the automaton as a diagram",
	Long:  `Outputs a Mermaid (graph LR) or Graphviz diagram of the automaton. With --overlay, states are colored by analysis results.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		overlay, _ := cmd.Flags().GetBool("overlay")

		if err := runGraph(os.Stdout, args[0], format, overlay); err != nil {
			fmt.Printf("Error generating graph: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("format", "f", "mermaid", "Diagram format: mermaid or dot")
	graphCmd.Flags().Bool("overlay", false, "Color blocking, unreachable and dead states")
}

func runGraph(w io.Writer, path, format string, overlay bool) error {
	def, err := schema.ReadFile(path)
	if err != nil {
		return err
	}
	a, err := def.Build()
	if err != nil {
		return err
	}

	var r *domain.Report
	if overlay {
		if r, err = a.Analyze(); err != nil {
			return err
		}
	}

	switch format {
	case "", "mermaid":
		fmt.Fprint(w, graph.GenerateMermaid(a, r))
	case "dot":
		fmt.Fprint(w, graph.GenerateDot(a, r))
	default:
		return fmt.Errorf("unknown graph format %q", format)
	}
	return nil
}
