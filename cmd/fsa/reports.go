package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/fsa"
	"github.com/aretw0/fsa/internal/presentation/report"
	"github.com/spf13/cobra"
)

var reportsCmd = &cobra.Command{
	Use:   "reports [NAME]",
	Short: "List stored reports, or print one",
	Long:  `Without arguments, lists the reports in the configured store. With a name, prints that report. Only persistent stores (file, bolt, redis) outlive a single command.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		del, _ := cmd.Flags().GetBool("delete")

		analyzer, closeStore, err := newAnalyzer(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer closeStore()

		if err := runReports(cmd.Context(), os.Stdout, analyzer, args, del); err != nil {
			fmt.Printf("Error: %v\n", err)
			closeStore()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.Flags().Bool("delete", false, "Delete the named report instead of printing it")
}

func runReports(ctx context.Context, w io.Writer, analyzer *fsa.Analyzer, args []string, del bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(args) == 0 {
		if del {
			return fmt.Errorf("--delete needs a report name")
		}
		names, err := analyzer.Reports(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(w, name)
		}
		return nil
	}

	if del {
		if err := analyzer.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(w, "Deleted %s\n", args[0])
		return nil
	}
	r, err := analyzer.Report(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(w, report.Text(r))
	return nil
}
