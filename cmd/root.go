package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"idcheck/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "idcheck",
	Short: "idcheck - identity document intake and face verification",
	Long: `idcheck processes identity document images: it runs OCR over an
uploaded Aadhaar, PAN or generic document (such as a passport), extracts
structured fields (name, date of birth, ID numbers, nationality) with
per-type heuristics, detects and crops the document photo, and compares
the document face against a second photo.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("idcheck executed")

		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
