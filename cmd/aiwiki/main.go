package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aiwiki/aiwiki/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "aiwiki",
	Short: "Generate and browse API documentation for a Go web project",
	Long: `aiwiki introspects a target Go project, generates markdown, Mermaid ERD
and styled HTML documentation, and serves it through a local dashboard with
an AI chat assistant.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(os.Getenv("LOG_LEVEL"))
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
