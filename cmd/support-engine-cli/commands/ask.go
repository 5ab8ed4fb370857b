package commands

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cdp-assist/support-engine/cmd/support-engine-cli/ui"
	"github.com/cdp-assist/support-engine/internal/knowledge"
	"github.com/cdp-assist/support-engine/internal/platform"
	"github.com/cdp-assist/support-engine/internal/resolver"
	"github.com/cdp-assist/support-engine/pkg/botclient"
)

var (
	askPlatform string
	askServer   string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a CDP support question",
	Long: `Ask resolves a "how-to" question against the built-in knowledge base and
prints the matched answer with its documentation source. With --server the
question is sent to a running API instance instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askPlatform, "platform", "p", "", "platform to scope the question to (segment, mparticle, lytics, zeotap)")
	askCmd.Flags().StringVar(&askServer, "server", "", "resolve through a running API instance at this base URL")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	ui.InitUI(noColor, verbose)
	defer ui.Close()

	if askPlatform != "" && !platform.Known(askPlatform) {
		ui.Warning("Unknown platform %q, matching across all platforms", askPlatform)
	}

	var (
		resp *botclient.ChatResponse
		err  error
	)
	if askServer != "" {
		resp, err = askRemote(context.Background(), question)
	} else {
		resp, err = askLocal(question)
	}
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(resp)
	}
	printAnswer(resp)
	return nil
}

// askLocal resolves the question against the in-process knowledge base.
func askLocal(question string) (*botclient.ChatResponse, error) {
	res := resolver.NewResolver(knowledge.NewBase(), newLogger())

	entry := res.Resolve(question, askPlatform)
	if entry == nil {
		return &botclient.ChatResponse{Response: resolver.HelpText(askPlatform)}, nil
	}
	return &botclient.ChatResponse{
		Response: entry.Answer,
		Sources:  []botclient.Source{{Title: entry.Source, URL: entry.URL}},
	}, nil
}

// askRemote sends the question to a running API instance.
func askRemote(ctx context.Context, question string) (*botclient.ChatResponse, error) {
	client, err := botclient.New(botclient.Config{
		BaseURL: askServer,
		Timeout: 30 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	var sp *ui.Spinner
	if !asJSON {
		sp = ui.NewSpinner("Waiting for " + askServer)
		sp.Start()
	}
	resp, err := client.Chat(ctx, botclient.ChatRequest{Message: question, Platform: askPlatform})
	sp.Stop()

	return resp, err
}

func printAnswer(resp *botclient.ChatResponse) {
	ui.Newline()
	ui.Message("%s", resp.Response)
	for _, src := range resp.Sources {
		ui.Newline()
		if src.URL != "" {
			ui.Info("Source: %s (%s)", src.Title, src.URL)
		} else {
			ui.Info("Source: %s", src.Title)
		}
	}
}
