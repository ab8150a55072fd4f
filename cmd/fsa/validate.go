package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/fsa/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a definition for consistency",
	Long:  `Decodes a definition and builds its automaton, reporting every malformed entry and dangling transition reference.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(os.Stdout, args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			var aggr *schema.AggregateError
			if errors.As(err, &aggr) {
				for _, e := range aggr.Errors {
					fmt.Printf("  - %v\n", e)
				}
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(w io.Writer, path string) error {
	def, err := schema.ReadFile(path)
	if err != nil {
		return err
	}
	a, err := def.Build()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Definition is valid! ✅ (%d states, %d events, %d transitions)\n",
		len(a.States()), len(a.Events()), len(a.Transitions()))
	return nil
}
