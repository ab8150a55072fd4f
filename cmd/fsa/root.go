package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/fsa/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fsa",
	Short: "fsa analyzes the structure of finite state automata",
	Long: `fsa loads automaton definitions (states X, events E, transitions delta)
and reports reachability, co-reachability, blocking, trimness, dead states
and reversibility.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("store", "memory", "Report store: memory, file, bolt or redis")
	rootCmd.PersistentFlags().String("store-path", "", "Directory (file) or database file (bolt) for reports")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address (redis store)")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelFlag, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")

	level, err := logging.ParseLevel(levelFlag)
	if err != nil {
		return nil, err
	}
	switch format {
	case "text":
		return logging.New(level), nil
	case "json":
		return logging.NewJSON(level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
