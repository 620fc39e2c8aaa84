package cmd

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your SmartLib account",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := bufio.NewScanner(os.Stdin)
		email := loginEmail
		if email == "" {
			email = promptLine(sc, "Email: ")
		}
		if email == "" {
			return fmt.Errorf("email is required")
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		ctx, cancel := cmdContext()
		defer cancel()

		user, token, err := client.Login(ctx, email, password)
		if err != nil {
			return err
		}
		if err := session.LoginSucceeded(user, token); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		fmt.Printf("Welcome back, %s!\n", user.FullName)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !session.LoggedIn() {
			fmt.Println("Not logged in.")
			return nil
		}
		ctx, cancel := cmdContext()
		defer cancel()

		session.Logout(ctx, client)
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		user := session.CurrentUser()
		if user == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("Name:  %s\n", user.FullName)
		fmt.Printf("Email: %s\n", user.Email)
		fmt.Printf("Phone: %s\n", user.Phone)
		fmt.Printf("Role:  %s\n", user.Role)
		if role, expiry, ok := session.TokenClaims(); ok {
			if role != "" {
				fmt.Printf("Token role: %s\n", role)
			}
			if !expiry.IsZero() {
				fmt.Printf("Token expires: %s\n", expiry.Local().Format(time.RFC1123))
			}
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
