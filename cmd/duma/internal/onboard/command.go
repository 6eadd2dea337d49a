package onboard

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dumalabs/duma/cmd/duma/internal"
	"github.com/dumalabs/duma/pkg/config"
)

func NewOnboardCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Write a starter config to ~/.duma/config.json",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return onboardCmd(force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	return cmd
}

func onboardCmd(force bool) error {
	path := internal.GetConfigPath()

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if err := config.SaveConfig(path, cfg); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}

	fmt.Printf("%s Wrote starter config to %s\n", internal.Logo, path)
	fmt.Println("Set DUMA_PROVIDERS_OPENAI_API_KEY (or edit the file) and run: duma gateway")
	return nil
}
