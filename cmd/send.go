package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cazelabs/cazechat/internal/backend"
	"github.com/cazelabs/cazechat/internal/composer"
	"github.com/cazelabs/cazechat/internal/config"
	"github.com/cazelabs/cazechat/internal/conversation"
	"github.com/cazelabs/cazechat/internal/logger"
	"github.com/cazelabs/cazechat/internal/submission"
)

var sendFile string

var sendCmd = &cobra.Command{
	Use:   "send [prompt...]",
	Short: "Send one prompt and print the reply",
	Long: `Sends a single submission to the backend without starting the TUI and
prints the reply. A file can be attached with --file; a file-only submission
needs no prompt.`,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVarP(&sendFile, "file", "f", "", "Attach a file")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	sender := backend.NewClient(cfg.GetEndpoint(), cfg.GetRequestTimeout())
	return sendOnce(cmd.Context(), cmd.OutOrStdout(), cfg, sender, strings.Join(args, " "), sendFile)
}

// sendOnce runs a full submission through a throwaway conversation and writes
// the reply to out.
func sendOnce(ctx context.Context, out io.Writer, cfg *config.Config, sender backend.Sender, prompt, file string) error {
	store := conversation.NewStore()
	comp := composer.New()
	comp.SetText(prompt)

	if file != "" {
		att, err := composer.LoadFile(file)
		if err != nil {
			return err
		}
		comp.Attach(att)
	}
	if comp.IsEmpty() {
		return fmt.Errorf("nothing to send: give a prompt or --file")
	}

	flow := submission.NewFlow(store, comp, sender, userIDFlag)
	res, _ := flow.Submit(ctx)
	if res.Err != nil {
		return res.Err
	}

	if res.Reply.Text != "" {
		fmt.Fprintln(out, res.Reply.Text)
	}
	if res.Reply.FileURL != "" {
		fmt.Fprintln(out, backend.FileURL(cfg.GetBackendHost(), res.Reply.FileURL))
	}
	return nil
}
