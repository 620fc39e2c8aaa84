package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"smartlib/library"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer library bookings",
}

var adminBookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List all bookings awaiting action",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(); err != nil {
			return err
		}

		ctx, cancel := cmdContext()
		defer cancel()

		list := library.NewBookingList(session, client)
		if err := list.LoadAll(ctx); err != nil {
			return err
		}
		bookings := list.All()
		if len(bookings) == 0 {
			fmt.Println("No bookings yet.")
			return nil
		}

		fmt.Printf("%-6s %-20s %-30s %-12s %-10s %s\n", "ID", "Borrower", "Book", "Date", "Status", "Actions")
		fmt.Println(strings.Repeat("-", 100))
		for _, b := range bookings {
			borrower := b.Borrower
			if borrower == "" {
				borrower = fmt.Sprintf("user %d", b.UserID)
			}
			date := "-"
			if !b.BookedAt.IsZero() {
				date = b.BookedAt.Format("2006-01-02")
			}
			actions := "done"
			if allowed := library.AllowedTransitions(b.Status, library.RoleAdmin); len(allowed) > 0 {
				names := make([]string, len(allowed))
				for i, s := range allowed {
					names[i] = string(s)
				}
				actions = strings.Join(names, ", ")
			}
			fmt.Printf("%-6d %-20s %-30s %-12s %-10s %s\n",
				b.ID,
				truncateString(borrower, 20),
				truncateString(b.Title, 30),
				date,
				b.Status,
				actions)
		}
		return nil
	},
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve <booking-id>",
	Short: "Approve a pending booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdminTransition(args[0], library.StatusApproved)
	},
}

var adminRejectCmd = &cobra.Command{
	Use:   "reject <booking-id>",
	Short: "Reject a pending booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdminTransition(args[0], library.StatusRejected)
	},
}

var adminReturnCmd = &cobra.Command{
	Use:   "return <booking-id>",
	Short: "Mark a borrowed book as returned",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdminTransition(args[0], library.StatusReturned)
	},
}

func runAdminTransition(rawID string, to library.Status) error {
	bookingID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid booking ID: %s", rawID)
	}
	if _, err := requireLogin(); err != nil {
		return err
	}
	if !confirm(fmt.Sprintf("Change status to %q?", to)) {
		fmt.Println("Aborted.")
		return nil
	}

	ctx, cancel := cmdContext()
	defer cancel()

	list := library.NewBookingList(session, client)
	if err := list.LoadAll(ctx); err != nil {
		return err
	}
	if err := list.RequestTransition(ctx, bookingID, to); err != nil {
		return err
	}
	fmt.Printf("Status changed to %s.\n", to)
	return nil
}

func init() {
	adminCmd.AddCommand(adminBookingsCmd)
	adminCmd.AddCommand(adminApproveCmd)
	adminCmd.AddCommand(adminRejectCmd)
	adminCmd.AddCommand(adminReturnCmd)
	rootCmd.AddCommand(adminCmd)
}
