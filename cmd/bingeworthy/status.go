package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the server is up",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(_ *cobra.Command, _ []string) error {
	status, err := NewClient(serverURL, authToken).Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}
	if jsonOutput {
		printJSON(status)
		return nil
	}
	fmt.Printf("bingeworthyd v%s | Server: %s | Status: %s\n", status.Version, serverURL, status.Status)
	return nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
