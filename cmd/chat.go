package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nexuchat/nexuchat/internal/shared/cmdutils"
)

var chatModel string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation with memory",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatModel, "model", "m", "", "Model id to start with")
}

func runChat(_ *cobra.Command, _ []string) error {
	_, container, err := bootstrap()
	if err != nil {
		return err
	}
	defer container.Close()

	ad := container.Adapter()
	if chatModel != "" {
		ad.Session().SetModel(chatModel)
	}

	// Graceful shutdown context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	fmt.Printf("%s Interactive mode (type 'exit' or Ctrl+C to quit, /help for commands)\n", cmdutils.Logo())
	fmt.Printf("Endpoint: %s\nModel:    %s\n\n", ad.Endpoint(), ad.Session().CurrentModel())

	g.Go(func() error { return container.Scheduler().Start(gctx) })
	g.Go(func() error {
		// Leaving the REPL shuts the scheduler down too.
		defer stop()
		return newREPL(ad, os.Stdin, os.Stdout).Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("Goodbye!")
	return nil
}
