package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cdp-assist/support-engine/cmd/support-engine-cli/ui"
	"github.com/cdp-assist/support-engine/internal/platform"
)

var (
	searchPlatform string
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search a platform's ingested documentation",
	Long: `Search refreshes the requested platform's documentation into the local
document store and runs a similarity search over it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchPlatform, "platform", "p", "", "platform collection to search (required)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 uses the configured limit)")
	_ = searchCmd.MarkFlagRequired("platform")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	query := strings.Join(args, " ")

	ui.InitUI(noColor, verbose)
	defer ui.Close()

	if !platform.Known(searchPlatform) {
		return fmt.Errorf("unknown platform %q (supported: %s)", searchPlatform, strings.Join(platform.IDs(), ", "))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ui.Verbose("Using document store at %s", cfg.Ingestion.DataDir)

	coordinator, err := buildCoordinator(cfg, newLogger())
	if err != nil {
		return err
	}

	// The store starts empty each run, so ingest the platform first.
	var sp *ui.Spinner
	if !asJSON {
		sp = ui.NewSpinner("Fetching " + searchPlatform + " documentation")
		sp.Start()
	}
	refreshErr := coordinator.RefreshPlatform(ctx, searchPlatform)
	sp.Stop()
	if refreshErr != nil {
		return fmt.Errorf("refresh %s documentation: %w", searchPlatform, refreshErr)
	}

	results, err := coordinator.Search(ctx, searchPlatform, query, searchLimit)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(results)
	}

	if len(results) == 0 {
		ui.Warning("No results for %q in %s documentation", query, searchPlatform)
		return nil
	}

	ui.Section(fmt.Sprintf("Results for %q (%s)", query, searchPlatform))
	for i, res := range results {
		ui.Box(fmt.Sprintf("Result %d - %s", i+1, res.Source), snippet(res.Content, 400, 76))
		ui.Newline()
	}
	return nil
}

// snippet trims content to at most maxRunes and word-wraps it to width
// columns for boxed display.
func snippet(s string, maxRunes, width int) string {
	runes := []rune(s)
	if len(runes) > maxRunes {
		runes = append(runes[:maxRunes], '…')
	}

	var b strings.Builder
	col := 0
	for _, word := range strings.Fields(string(runes)) {
		wlen := len([]rune(word))
		switch {
		case col == 0:
		case col+wlen+1 > width:
			b.WriteByte('\n')
			col = 0
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(word)
		col += wlen
	}
	return b.String()
}
