package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sethvargo/go-password/password"
	"github.com/spf13/cobra"

	"github.com/vmunix/bingeworthy/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter config.toml",
	Long: `Write a starter config.toml for bingeworthyd.

Without a path, the file goes to $XDG_CONFIG_HOME/bingeworthy/config.toml.
An existing file is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := config.DefaultPath()
		if len(args) > 0 {
			path = args[0]
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		secret, err := generateSecret()
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n\n", path)
		fmt.Println("Export the token signing key and a TMDb key, then run 'bingeworthyd':")
		fmt.Printf("  export SECRET_KEY=%s\n", secret)
		fmt.Println("  export TMDB_API_KEY=...")
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without starting the server.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

func init() {
	rootCmd.AddCommand(initCmd, configCmd)
	configCmd.AddCommand(configTestCmd)
}

// generateSecret returns a random 48-character signing key.
func generateSecret() (string, error) {
	secret, err := password.Generate(48, 10, 0, false, true)
	if err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return secret, nil
}

func runConfigTest(_ *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func printConfigErrors(e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}

	if len(e.Errors) > 0 {
		fmt.Println("Validation errors:")
		for _, err := range e.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
	}
}

func printConfigSummary(cfg *config.Config) {
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Server:     %s (log: %s, %s)\n", cfg.Addr(), cfg.Server.LogLevel, cfg.Server.LogFormat)
	fmt.Printf("  Database:   %s\n", cfg.Database.Path)
	fmt.Printf("  Region:     %s\n", cfg.TMDB.Region)
	fmt.Printf("  Workers:    %d\n", cfg.Enrich.Workers)

	integrations := []string{}
	if cfg.TMDB.APIKey != "" {
		integrations = append(integrations, "tmdb")
	}
	if cfg.OMDB.APIKey != "" {
		integrations = append(integrations, "omdb")
	}
	if cfg.TextGen.APIToken != "" {
		integrations = append(integrations, "textgen")
	}
	if len(integrations) > 0 {
		fmt.Printf("  Integrations: %s\n", strings.Join(integrations, ", "))
	} else {
		fmt.Println("  Integrations: none (search will fail until tmdb.api_key is set)")
	}
	if len(cfg.CORS.AllowedOrigins) > 0 {
		fmt.Printf("  CORS:       %s\n", strings.Join(cfg.CORS.AllowedOrigins, ", "))
	}
}
