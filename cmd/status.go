package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexuchat/nexuchat/internal/shared/cmdutils"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show nexuchat status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := resolvedConfigPath()

	fmt.Printf("%s nexuchat Status\n\n", cmdutils.Logo())

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:    %s %s\n", cfgPath, cfgMark)

	cfg, container, err := bootstrap()
	if err != nil {
		fmt.Printf("  (could not start: %v)\n", err)
		return nil
	}
	defer container.Close()

	ad := container.Adapter()
	fmt.Printf("Endpoint:  %s\n", ad.Endpoint())
	fmt.Printf("Model:     %s\n", ad.Session().CurrentModel())

	timeout := "none"
	if d := cfg.Timeout(); d > 0 {
		timeout = d.String()
	}
	fmt.Printf("Timeout:   %s\n", timeout)

	refresh := "off"
	if cfg.CatalogRefresh != "" {
		refresh = cfg.CatalogRefresh
	}
	fmt.Printf("Refresh:   %s\n", refresh)

	ad.Wait()
	if n := ad.Catalog().Count(); n > 0 {
		fmt.Printf("Models:    %d ✓\n", n)
	} else {
		fmt.Println("Models:    (unavailable)")
	}
	return nil
}
