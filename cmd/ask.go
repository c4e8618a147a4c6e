package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nexuchat/nexuchat/internal/shared/cmdutils"
)

var askModel string

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Send a single prompt without conversation memory",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "Model id, e.g. openrouter/free (default: server default)")
}

func runAsk(_ *cobra.Command, args []string) error {
	_, container, err := bootstrap()
	if err != nil {
		return err
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess := container.Adapter().Session()
	if askModel != "" {
		sess.SetModel(askModel)
	}

	res := sess.AskResult(ctx, strings.Join(args, " "))
	if !res.OK() {
		return fmt.Errorf("ask: %w", res.Err)
	}
	cmdutils.PrintResponse(os.Stdout, res.Text)
	return nil
}
