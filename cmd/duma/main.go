// Duma - Animal Health Class Assistant
// License: MIT

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dumalabs/duma/cmd/duma/internal"
	"github.com/dumalabs/duma/cmd/duma/internal/chat"
	"github.com/dumalabs/duma/cmd/duma/internal/gateway"
	"github.com/dumalabs/duma/cmd/duma/internal/onboard"
	"github.com/dumalabs/duma/cmd/duma/internal/version"
)

func NewDumaCommand() *cobra.Command {
	short := fmt.Sprintf("%s duma - Animal Health Class Assistant v%s\n\n", internal.Logo, internal.GetVersion())

	cmd := &cobra.Command{
		Use:     "duma",
		Short:   short,
		Example: "duma gateway",
	}

	cmd.AddCommand(
		onboard.NewOnboardCommand(),
		gateway.NewGatewayCommand(),
		chat.NewChatCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	_ = godotenv.Load()

	cmd := NewDumaCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
