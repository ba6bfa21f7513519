package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/Faclon-Labs/connector-go/pkg/ioclient"
	"github.com/Faclon-Labs/connector-go/pkg/ioconnect"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the platform",
		Long:  "Authenticate with username and password and persist the returned access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := viper.GetString("backend")
			if backend == "" {
				return ioconnect.ErrBackendHostRequired
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			config := &ioconnect.Config{
				BackendHost: backend,
				OnPrem:      viper.GetBool("on-prem"),
			}

			client, err := ioclient.New(config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			result, err := client.Login(context.Background(), username, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			cliConfig, err := loadCLIConfig()
			if err != nil {
				return err
			}

			// ioclient.New normalized the host; persist the normalized form.
			cliConfig.Backend = config.BackendHost
			cliConfig.Token = result.Token
			cliConfig.OnPrem = config.OnPrem

			err = saveCLIConfig(cliConfig)
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s\n", username)

			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}
