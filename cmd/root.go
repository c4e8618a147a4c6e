// Package cmd implements the nexuchat CLI using cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexuchat/nexuchat/internal/config"
	"github.com/nexuchat/nexuchat/internal/dependency"
	"github.com/nexuchat/nexuchat/internal/shared/cmdutils"
)

const version = "0.1.0"

var (
	configPath string
	showLogs   bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:           "nexuchat",
	Short:         cmdutils.Logo() + " nexuchat — chat through a NexuGPT proxy",
	Long:          cmdutils.Logo() + " nexuchat — a small client for a chat-completion proxy service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.nexuchat/config.json)")
	rootCmd.PersistentFlags().BoolVar(&showLogs, "logs", false, "Show runtime logs")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(statusCmd)
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.ConfigPath()
}

// bootstrap loads the config, installs the logger and builds the container.
// Callers must Close the container.
func bootstrap() (*config.Config, *dependency.Container, error) {
	cfg, err := config.Load(resolvedConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.SlogLevel()
	if showLogs {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	container, err := dependency.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, container, nil
}
