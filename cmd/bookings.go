package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"smartlib/library"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Show your active bookings and history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(); err != nil {
			return err
		}

		ctx, cancel := cmdContext()
		defer cancel()

		list := library.NewBookingList(session, client)
		if err := list.Load(ctx); err != nil {
			return err
		}

		fmt.Println("Active bookings")
		printBookingTable(list.Active(), "No active bookings.")
		fmt.Println()
		fmt.Println("Booking history")
		printBookingTable(list.History(), "No booking history yet.")
		return nil
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <booking-id>",
	Short: "Submit a draft booking for approval",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUserTransition(args[0], library.StatusPending,
			"Submit this booking for approval?", "Booking submitted.")
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <booking-id>",
	Short: "Cancel a draft or pending booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUserTransition(args[0], library.StatusCancelled,
			"Are you sure you want to cancel this booking?", "Booking cancelled.")
	},
}

func runUserTransition(rawID string, to library.Status, question, done string) error {
	bookingID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid booking ID: %s", rawID)
	}
	if _, err := requireLogin(); err != nil {
		return err
	}
	if !confirm(question) {
		fmt.Println("Aborted.")
		return nil
	}

	ctx, cancel := cmdContext()
	defer cancel()

	list := library.NewBookingList(session, client)
	if err := list.Load(ctx); err != nil {
		return err
	}
	if err := list.RequestTransition(ctx, bookingID, to); err != nil {
		return err
	}
	fmt.Println(done)
	return nil
}

func printBookingTable(bookings []*library.Booking, empty string) {
	if len(bookings) == 0 {
		fmt.Println(empty)
		return
	}
	fmt.Printf("%-6s %-35s %-25s %-12s %s\n", "ID", "Title", "Author", "Booked", "Status")
	fmt.Println(strings.Repeat("-", 95))
	for _, b := range bookings {
		booked := "-"
		if !b.BookedAt.IsZero() {
			booked = b.BookedAt.Format("2006-01-02")
		}
		fmt.Printf("%-6d %-35s %-25s %-12s %s\n",
			b.ID,
			truncateString(b.Title, 35),
			truncateString(b.Author, 25),
			booked,
			b.Status)
	}
}

func init() {
	rootCmd.AddCommand(bookingsCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(cancelCmd)
}
