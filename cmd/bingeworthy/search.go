package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <query>...",
	Short: "Search movies and TV shows",
	Long: `Search movies and TV shows with ratings and streaming platforms.

Examples:
  bingeworthy search arrival
  bingeworthy search "breaking bad" --country GB
  bingeworthy search dune --platform netflix --page 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <query>...",
	Short: "Suggest titles for a partial query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		resp, err := NewClient(serverURL, authToken).Suggest(strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("suggest failed: %w", err)
		}
		if jsonOutput {
			printJSON(resp)
			return nil
		}
		if len(resp.Suggestions) == 0 {
			fmt.Println("No suggestions")
			return nil
		}
		for _, s := range resp.Suggestions {
			fmt.Println(s)
		}
		fmt.Printf("\n(source: %s)\n", resp.Source)
		return nil
	},
}

var trendingCmd = &cobra.Command{
	Use:     "trending",
	Aliases: []string{"recommendations"},
	Short:   "Show this week's trending titles",
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		resp, err := NewClient(serverURL, authToken).Trending()
		if err != nil {
			return fmt.Errorf("trending failed: %w", err)
		}
		if jsonOutput {
			printJSON(resp)
			return nil
		}
		if len(resp.Results) == 0 {
			fmt.Println("Nothing trending")
			return nil
		}
		for i, item := range resp.Results {
			fmt.Printf(" %2d. %s%s\n", i+1, item.Title, formatYear(item.Year))
		}
		return nil
	},
}

var titleCmd = &cobra.Command{
	Use:   "title <movie|tv> <id>",
	Short: "Show one title with ratings and platforms",
	Args:  cobra.ExactArgs(2),
	RunE:  runTitleCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd, suggestCmd, trendingCmd, titleCmd)
	searchCmd.Flags().String("platform", "", "Only titles streaming on this platform")
	searchCmd.Flags().String("language", "", "Original language (ISO 639-1)")
	searchCmd.Flags().String("country", "", "Watch-provider region (ISO 3166-1)")
	searchCmd.Flags().Int("page", 1, "Result page")
	searchCmd.Flags().BoolP("verbose", "v", false, "Show per-source rating breakdowns")
	titleCmd.Flags().String("region", "", "Watch-provider region (ISO 3166-1)")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	opts := SearchOptions{}
	opts.Platform, _ = cmd.Flags().GetString("platform")
	opts.Language, _ = cmd.Flags().GetString("language")
	opts.Country, _ = cmd.Flags().GetString("country")
	opts.Page, _ = cmd.Flags().GetInt("page")
	verbose, _ := cmd.Flags().GetBool("verbose")

	results, err := NewClient(serverURL, authToken).Search(query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(results)
		return nil
	}

	if len(results.Results) == 0 {
		fmt.Println("No titles found")
		return nil
	}

	printSearchHuman(query, results, verbose)
	return nil
}

func runTitleCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id: %s", args[1])
	}
	region, _ := cmd.Flags().GetString("region")

	t, err := NewClient(serverURL, authToken).Title(args[0], id, region)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	if jsonOutput {
		printJSON(t)
		return nil
	}
	printTitle(t)
	return nil
}

func printSearchHuman(query string, r *SearchResponse, verbose bool) {
	fmt.Printf("Found %d titles for %q (page %d of %d):\n\n", r.TotalResults, query, r.Page, r.TotalPages)
	renderSearchTable(os.Stdout, r.Results, verbose)
}

func renderSearchTable(w io.Writer, results []Title, verbose bool) {
	table := tablewriter.NewWriter(w)
	header := []string{"#", "Title", "Type", "Rating", "Platforms"}
	if verbose {
		header = append(header, "Sources")
	}
	table.SetHeader(header)
	table.SetAutoWrapText(false)

	for i := range results {
		t := &results[i]
		row := []string{
			strconv.Itoa(i + 1),
			truncate(t.Title+formatYear(t.Year), 40),
			t.MediaType,
			formatRating(t.AggregatedRating),
			formatPlatforms(t.Platforms),
		}
		if verbose {
			row = append(row, formatBreakdown(t.RatingsBreakdown))
		}
		table.Append(row)
	}
	table.Render()
}

func printTitle(t *Title) {
	fmt.Printf("%s%s [%s #%d]\n\n", t.Title, formatYear(t.Year), t.MediaType, t.ID)
	fmt.Printf("  Rating:     %s\n", formatRating(t.AggregatedRating))
	if b := formatBreakdown(t.RatingsBreakdown); b != "" {
		fmt.Printf("  Sources:    %s\n", b)
	}
	fmt.Printf("  Platforms:  %s\n", formatPlatforms(t.Platforms))
	if t.ProviderLink != nil {
		fmt.Printf("  Watch:      %s\n", *t.ProviderLink)
	}
	if t.Summary != "" {
		fmt.Printf("\n%s\n", t.Summary)
	}
}

func formatYear(year string) string {
	if year == "" {
		return ""
	}
	return " (" + year + ")"
}

func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}

func formatPlatforms(p []string) string {
	if len(p) == 0 {
		return "-"
	}
	return strings.Join(p, ", ")
}

// formatBreakdown renders per-source scores in a fixed order.
func formatBreakdown(b map[string]float64) string {
	var parts []string
	for _, src := range []string{"tmdb", "imdb", "rt"} {
		if v, ok := b[src]; ok {
			parts = append(parts, fmt.Sprintf("%s %s", src, strconv.FormatFloat(v, 'f', -1, 64)))
		}
	}
	return strings.Join(parts, "  ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
