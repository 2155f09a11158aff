package main

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/bingeworthy/internal/config"
	"github.com/vmunix/bingeworthy/internal/settings"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for bingeworthy.

Completions cover media types for 'title', field keys for
'admin settings --set' and the config files 'config test' would discover.

Bash:
  $ source <(bingeworthy completion bash)

Zsh:
  $ bingeworthy completion zsh > "${fpath[1]}/_bingeworthy"

Fish:
  $ bingeworthy completion fish > ~/.config/fish/completions/bingeworthy.fish

PowerShell:
  PS> bingeworthy completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(_ *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(os.Stdout, true)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)

	titleCmd.ValidArgsFunction = completeTitleArgs
	configTestCmd.ValidArgsFunction = completeConfigPaths
	_ = adminSettingsCmd.RegisterFlagCompletionFunc("set",
		func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return settingKeyCompletions(toComplete)
		})
}

// completeTitleArgs offers the media type for the first argument only; ids
// come from search output.
func completeTitleArgs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"movie\tFeature film", "tv\tTV series"}, cobra.ShellCompDirectiveNoFileComp
}

// completeConfigPaths lists discovered config files that exist, then falls
// back to ordinary file completion.
func completeConfigPaths(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var found []string
	for _, p := range config.SearchPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			found = append(found, p)
		}
	}
	return found, cobra.ShellCompDirectiveDefault
}

// settingKeyCompletions completes "group.field" first, then "=true|false".
func settingKeyCompletions(toComplete string) ([]string, cobra.ShellCompDirective) {
	if key, _, ok := strings.Cut(toComplete, "="); ok {
		return []string{key + "=true", key + "=false"}, cobra.ShellCompDirectiveNoFileComp
	}

	var keys []string
	for group, fields := range map[string]map[string]bool{
		"search": settings.DefaultSearchFields,
		"card":   settings.DefaultCardFields,
	} {
		for field := range fields {
			if key := group + "." + field; strings.HasPrefix(key, toComplete) {
				keys = append(keys, key+"=")
			}
		}
	}
	slices.Sort(keys)
	return keys, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
}
