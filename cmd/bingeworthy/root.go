package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	jsonOutput bool
	authToken  string
)

var rootCmd = &cobra.Command{
	Use:   "bingeworthy",
	Short: "CLI client for the bingeworthy catalog server",
	Long: `bingeworthy - CLI client for the bingeworthy catalog server

Search movies and TV shows, see where they stream and how well
they rate, and manage the server's settings and cache.

Run 'bingeworthyd' to start the server daemon.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8000", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("BINGEWORTHY_TOKEN"), "Admin bearer token (default $BINGEWORTHY_TOKEN)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("bingeworthy {{.Version}}\n")
}
