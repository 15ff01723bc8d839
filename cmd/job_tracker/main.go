// Package main provides the job_tracker command-line application.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	storageOpt string
	dataDirOpt string
)

var rootCmd = &cobra.Command{
	Use:   "job_tracker",
	Short: "Track LinkedIn job applications",
	Long: "job_tracker keeps a local list of job applications, scrapes posting details from a " +
		"scrape service, and can run that service itself.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&storageOpt, "storage", "", "Storage backend: file or sqlite")
	rootCmd.PersistentFlags().StringVar(&dataDirOpt, "data-dir", "", "Directory holding tracker data")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
