package chat

import (
	"github.com/spf13/cobra"
)

func NewChatCommand() *cobra.Command {
	var message string
	var sender string
	var debug bool

	cmd := &cobra.Command{
		Use:     "chat",
		Aliases: []string{"c"},
		Short:   "Talk to duma from the terminal",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return chatCmd(message, sender, debug)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Send one message and exit")
	cmd.Flags().StringVarP(&sender, "sender", "s", "local", "Sender identity for the session")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	return cmd
}
