package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cdp-assist/support-engine/cmd/support-engine-cli/ui"
	"github.com/cdp-assist/support-engine/internal/platform"
)

var refreshTimeout time.Duration

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-ingest documentation for every supported platform",
	Long: `Refresh fetches every platform's documentation page, strips it down to
plain text, embeds it and writes it to the local document store. One
platform's failure never aborts the run; the command only exits non-zero
when every platform failed.`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().DurationVar(&refreshTimeout, "timeout", 5*time.Minute, "overall refresh timeout")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ui.InitUI(noColor, verbose)
	defer ui.Close()

	coordinator, err := buildCoordinator(cfg, newLogger())
	if err != nil {
		return err
	}

	platforms := platform.All()

	if !asJSON {
		ui.Section("Documentation Refresh")
		ui.Info("Document store: %s", cfg.Ingestion.DataDir)
		ui.Newline()
	}

	var bar *ui.ProgressBar
	if !asJSON {
		bar = ui.NewProgressBar(int64(len(platforms)), "Refreshing")
	}

	start := time.Now()
	failures := make(map[string]error)
	for _, p := range platforms {
		if err := coordinator.RefreshPlatform(ctx, p.ID); err != nil {
			failures[p.ID] = err
		}
		bar.Add(1)
	}
	bar.Finish()

	succeeded := len(platforms) - len(failures)

	if asJSON {
		outcome := make(map[string]bool, len(platforms))
		for _, p := range platforms {
			_, failed := failures[p.ID]
			outcome[p.ID] = !failed
		}
		if err := printJSON(outcome); err != nil {
			return err
		}
	} else {
		ui.Newline()
		for _, p := range platforms {
			if err, failed := failures[p.ID]; failed {
				ui.Error("%s: %v", p.ID, err)
			} else {
				ui.Success("%s", p.ID)
			}
		}
		ui.Newline()
		ui.Message("Refreshed %d/%d platforms in %s", succeeded, len(platforms), time.Since(start).Round(time.Millisecond))
	}

	if succeeded == 0 {
		return fmt.Errorf("all %d platforms failed to refresh", len(platforms))
	}
	return nil
}
