package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartlib/library"
)

var (
	profileName    string
	profilePhone   string
	profileAddress string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireLogin()
		if err != nil {
			return err
		}

		upd := library.ProfileUpdate{}
		if cmd.Flags().Changed("name") {
			upd.FullName = &profileName
		}
		if cmd.Flags().Changed("phone") {
			upd.Phone = &profilePhone
		}
		if cmd.Flags().Changed("address") {
			upd.Address = &profileAddress
		}

		if upd.FullName != nil || upd.Phone != nil || upd.Address != nil {
			ctx, cancel := cmdContext()
			defer cancel()

			if err := client.UpdateProfile(ctx, upd); err != nil {
				return apiErr(err)
			}
			if user, err = session.UpdateProfile(upd); err != nil {
				return err
			}
			fmt.Println("Profile updated.")
		}

		fmt.Printf("Name:    %s\n", user.FullName)
		fmt.Printf("Email:   %s\n", user.Email)
		fmt.Printf("Phone:   %s\n", user.Phone)
		fmt.Printf("Address: %s\n", user.Address)
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "new full name")
	profileCmd.Flags().StringVar(&profilePhone, "phone", "", "new phone number")
	profileCmd.Flags().StringVar(&profileAddress, "address", "", "new address")
	rootCmd.AddCommand(profileCmd)
}
