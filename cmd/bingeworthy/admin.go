package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Get an admin bearer token",
	Long: `Exchange admin credentials for a bearer token.

The token is printed on stdout so it can be exported:

  export BINGEWORTHY_TOKEN=$(bingeworthy login admin)`,
	Args: cobra.ExactArgs(1),
	RunE: runLoginCmd,
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative commands (requires --token)",
}

var adminSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change search and card field settings",
	Long: `Show the current settings, or toggle fields with --set.

Examples:
  bingeworthy admin settings
  bingeworthy admin settings --set card.actors=true --set search.genres=false`,
	Args: cobra.NoArgs,
	RunE: runAdminSettingsCmd,
}

var adminClearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Delete every cached upstream response",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := requireToken(); err != nil {
			return err
		}
		resp, err := NewClient(serverURL, authToken).ClearCache()
		if err != nil {
			return adminError("clear cache", err)
		}
		if jsonOutput {
			printJSON(resp)
			return nil
		}
		fmt.Printf("%s (%d entries)\n", resp.Message, resp.Deleted)
		return nil
	},
}

var adminRegisterCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create another admin account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireToken(); err != nil {
			return err
		}
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			password = promptPassword("Password")
		}
		resp, err := NewClient(serverURL, authToken).Register(args[0], password)
		if err != nil {
			return adminError("register", err)
		}
		if jsonOutput {
			printJSON(resp)
			return nil
		}
		fmt.Printf("%s: %s\n", resp.Message, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, adminCmd)
	adminCmd.AddCommand(adminSettingsCmd, adminClearCacheCmd, adminRegisterCmd)

	loginCmd.Flags().String("password", "", "Password (prompted when empty)")
	adminRegisterCmd.Flags().String("password", "", "Password (prompted when empty)")
	adminSettingsCmd.Flags().StringArray("set", nil, "Set a field: search.<field>=<bool> or card.<field>=<bool>")
}

func runLoginCmd(cmd *cobra.Command, args []string) error {
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = promptPassword("Password")
	}

	resp, err := NewClient(serverURL, "").Login(args[0], password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if jsonOutput {
		printJSON(resp)
		return nil
	}
	fmt.Println(resp.AccessToken)
	return nil
}

func runAdminSettingsCmd(cmd *cobra.Command, _ []string) error {
	if err := requireToken(); err != nil {
		return err
	}
	client := NewClient(serverURL, authToken)

	current, err := client.Settings()
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}

	changes, _ := cmd.Flags().GetStringArray("set")
	if len(changes) > 0 {
		if err := applySettingChanges(current, changes); err != nil {
			return err
		}
		if _, err := client.UpdateSettings(current.SearchFields, current.CardFields); err != nil {
			return adminError("update settings", err)
		}
	}

	if jsonOutput {
		printJSON(current)
		return nil
	}
	printSettings(current)
	return nil
}

// applySettingChanges applies "group.field=bool" assignments to s.
func applySettingChanges(s *SettingsResponse, changes []string) error {
	if s.SearchFields == nil {
		s.SearchFields = map[string]bool{}
	}
	if s.CardFields == nil {
		s.CardFields = map[string]bool{}
	}
	for _, change := range changes {
		key, val, ok := strings.Cut(change, "=")
		if !ok {
			return fmt.Errorf("invalid setting %q: want group.field=value", change)
		}
		group, field, ok := strings.Cut(key, ".")
		if !ok || field == "" {
			return fmt.Errorf("invalid setting %q: want group.field=value", change)
		}
		enabled, err := parseBool(val)
		if err != nil {
			return fmt.Errorf("invalid setting %q: %w", change, err)
		}
		switch group {
		case "search":
			s.SearchFields[field] = enabled
		case "card":
			s.CardFields[field] = enabled
		default:
			return fmt.Errorf("invalid setting %q: group must be search or card", change)
		}
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "yes", "1":
		return true, nil
	case "false", "off", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", s)
}

func printSettings(s *SettingsResponse) {
	fmt.Println("Search fields")
	printFieldMap(s.SearchFields)
	fmt.Println()
	fmt.Println("Card fields")
	printFieldMap(s.CardFields)
}

func printFieldMap(m map[string]bool) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		state := "off"
		if m[k] {
			state = "on"
		}
		fmt.Printf("  %-10s %s\n", k, state)
	}
}

func requireToken() error {
	if authToken == "" {
		return errors.New("admin token required: run 'bingeworthy login <user>' and pass --token or set BINGEWORTHY_TOKEN")
	}
	return nil
}

func adminError(action string, err error) error {
	if isUnauthorized(err) {
		return fmt.Errorf("%s: token rejected, log in again: %w", action, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(label string) string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptRequired(label)
	}
	for {
		fmt.Fprintf(os.Stderr, "%s: ", label)
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return ""
		}
		if p := strings.TrimSpace(string(raw)); p != "" {
			return p
		}
		fmt.Fprintln(os.Stderr, "  Value required")
	}
}

func promptRequired(label string) string {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprintf(os.Stderr, "%s: ", label)
		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" || err != nil {
			return input
		}
		fmt.Fprintln(os.Stderr, "  Value required")
	}
}
