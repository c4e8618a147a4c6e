package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexuchat/nexuchat/internal/config"
	"github.com/nexuchat/nexuchat/internal/shared/cmdutils"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize the configuration file",
	RunE:  runOnboard,
}

func runOnboard(_ *cobra.Command, _ []string) error {
	cfgPath := resolvedConfigPath()

	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgPath)
		fmt.Printf("Press Enter to refresh (keep existing values) or Ctrl+C to cancel: ")
		fmt.Scanln()
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Config refreshed at %s\n", cfgPath)
	} else {
		cfg := config.DefaultConfig()
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Created config at %s\n", cfgPath)
	}

	fmt.Printf("\n%s nexuchat is ready!\n\n", cmdutils.Logo())
	fmt.Println("Next steps:")
	fmt.Printf("  1. Point \"endpoint\" in %s at your proxy (optional)\n", cfgPath)
	fmt.Println("  2. Ask: nexuchat ask \"Hello!\"")
	fmt.Println("  3. Chat: nexuchat chat")
	return nil
}
