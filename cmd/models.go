package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models offered by the service",
	RunE:  runModels,
}

var modelsIDCmd = &cobra.Command{
	Use:   "id <index>",
	Short: "Print the id of the model at a 1-based position",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsID,
}

var modelsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of available models",
	RunE:  runModelsCount,
}

func init() {
	modelsCmd.AddCommand(modelsIDCmd)
	modelsCmd.AddCommand(modelsCountCmd)
}

func runModels(_ *cobra.Command, _ []string) error {
	_, container, err := bootstrap()
	if err != nil {
		return err
	}
	defer container.Close()

	ad := container.Adapter()
	ad.Wait()
	fmt.Print(ad.Catalog().ListAsText())
	fmt.Println()
	return nil
}

func runModelsID(_ *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("index must be a number: %q", args[0])
	}

	_, container, err := bootstrap()
	if err != nil {
		return err
	}
	defer container.Close()

	ad := container.Adapter()
	ad.Wait()
	fmt.Println(ad.Catalog().GetByIndex(index))
	return nil
}

func runModelsCount(_ *cobra.Command, _ []string) error {
	_, container, err := bootstrap()
	if err != nil {
		return err
	}
	defer container.Close()

	ad := container.Adapter()
	ad.Wait()
	fmt.Println(ad.Catalog().Count())
	return nil
}
