package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smartlib/library"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new SmartLib account",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := bufio.NewScanner(os.Stdin)

		req := library.RegisterRequest{
			FullName: promptLine(sc, "Full name: "),
			Email:    promptLine(sc, "Email: "),
			Phone:    promptLine(sc, "Phone: "),
			Address:  promptLine(sc, "Address: "),
		}

		var err error
		req.Password, err = readPassword("Password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		req.ConfirmPassword, err = readPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		ctx, cancel := cmdContext()
		defer cancel()

		if err := client.Register(ctx, req); err != nil {
			return err
		}
		fmt.Println("Registration successful. You can now log in with smartlib login.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
