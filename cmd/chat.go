package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask PustakaBot about the library",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")

		ctx, cancel := cmdContext()
		defer cancel()

		reply, err := client.SendChatMessage(ctx, message)
		if err != nil {
			fmt.Println("Sorry, something went wrong while processing your message. Try again later.")
			return nil
		}
		fmt.Printf("PustakaBot: %s\n", reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
