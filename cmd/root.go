package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"smartlib/library"
)

var (
	cfg     library.Config
	store   *library.Store
	session *library.Session
	client  *library.Client
)

var rootCmd = &cobra.Command{
	Use:   "smartlib",
	Short: "Terminal client for the SmartLib digital library",
	Long: `smartlib browses the SmartLib catalog, manages your account and tracks
your book bookings from the terminal. All data lives on the library server;
only your login session is kept locally.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = library.LoadConfig()
		var err error
		store, err = library.OpenStore(cfg.StateDB)
		if err != nil {
			return fmt.Errorf("open state store: %w", err)
		}
		session = library.NewSession(store)
		session.Restore()
		client = library.NewClient(cfg, session)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
		}
	},
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// cmdContext bounds a single user action with the configured timeout.
func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.Timeout)
}

// requireLogin fetches the current user or tells the caller to log in first.
func requireLogin() (*library.User, error) {
	if u := session.CurrentUser(); u != nil {
		return u, nil
	}
	session.SetLoginPromptVisible(true)
	return nil, fmt.Errorf("please log in first (smartlib login)")
}

// apiErr drops the session when the backend rejects the credential, so the
// next command re-prompts for login.
func apiErr(err error) error {
	if errors.Is(err, library.ErrUnauthorized) {
		session.Invalidate()
	}
	return err
}

// readPassword securely reads a password with masking.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

// promptLine reads one trimmed line of input.
func promptLine(sc *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}

// confirm asks a yes/no question and defaults to no.
func confirm(prompt string) bool {
	sc := bufio.NewScanner(os.Stdin)
	answer := strings.ToLower(promptLine(sc, prompt+" [y/N]: "))
	return answer == "y" || answer == "yes"
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
