// Package main provides the entry point for the cvforge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvforge",
	Short: "Tailored CV generator",
	Long:  "cvforge turns a candidate profile and a job posting into a seniority-aware, layout-fitted CV document, via REST API or one-shot generation.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
