package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewUserCommand creates the user command group.
func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the account profile",
		Long:  "Show and update the profile of the account owning the token",
	}

	cmd.AddCommand(newUserInfoCommand())
	cmd.AddCommand(newUserQuotaCommand())
	cmd.AddCommand(newUserUpdateCommand())

	return cmd
}

func newUserInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show account details",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			details, err := client.Users().GetDetails(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get user details: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(details)
			case OutputFormatYAML:
				return StandardYAMLRenderer(details)
			default:
				return renderUserDetails(details)
			}
		},
	}
}

func renderUserDetails(details *ioconnect.UserDetails) error {
	timezone := details.Timezone
	if timezone == "" {
		timezone = NotAvailable
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("ID", details.ID)
	_ = table.Append("Email", details.Email)
	_ = table.Append("Name", details.Name)
	_ = table.Append("Organisation", details.Organisation)
	_ = table.Append("Timezone", timezone)
	_ = table.Append("Created", details.CreatedAt.Format(dateTimeFormat))
	_ = table.Render()

	return nil
}

func newUserQuotaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show account limits and usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			quota, err := client.Users().GetQuota(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get user quota: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(quota)
			case OutputFormatYAML:
				return StandardYAMLRenderer(quota)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("Device limit", strconv.Itoa(quota.DeviceLimit))
				_ = table.Append("Devices used", strconv.Itoa(quota.DeviceCount))
				_ = table.Append("Data retention (days)", strconv.Itoa(quota.DataDays))
				_ = table.Render()

				return nil
			}
		},
	}
}

func newUserUpdateCommand() *cobra.Command {
	var (
		name     string
		timezone string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the account profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &ioconnect.UserProfileUpdateRequest{}

			if cmd.Flags().Changed("name") {
				request.Name = &name
			}

			if cmd.Flags().Changed("timezone") {
				request.Timezone = &timezone
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			details, err := client.Users().UpdateProfile(context.Background(), request)
			if err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}

			fmt.Printf("Profile updated for %s\n", details.Email)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&timezone, "timezone", "", "new preferred timezone")

	return cmd
}
