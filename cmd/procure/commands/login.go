package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	internalhttp "github.com/quotia-io/procure/internal/http"
	"github.com/quotia-io/procure/pkg/procure"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		username    string
		password    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the procurement API",
		Long:  "Authenticate against the API and store the issued token in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				return procure.ErrBaseURLRequired
			}

			reader := bufio.NewReader(os.Stdin)

			if username == "" {
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if password == "" {
				fmt.Print("Password: ")

				raw, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("reading password: %w", err)
				}

				fmt.Println()

				password = string(raw)
			}

			client := internalhttp.NewClient(apiEndpoint + procure.DefaultAPIVersion)

			resp, err := client.Post(context.Background(), "/auth/login", map[string]string{
				"username": username,
				"password": password,
			})
			if err != nil {
				return fmt.Errorf("logging in: %w", err)
			}

			var envelope procure.Envelope[struct {
				Token string `json:"token"`
			}]

			err = json.Unmarshal(resp.Body, &envelope)
			if err != nil {
				return fmt.Errorf("decoding login response: %w", err)
			}

			if envelope.Data == nil {
				return procure.ErrEmptyEnvelope
			}

			viper.Set("api", apiEndpoint)
			viper.Set("token", envelope.Data.Token)

			err = viper.WriteConfig()
			if err != nil {
				err = viper.SafeWriteConfig()
			}

			if err != nil {
				return fmt.Errorf("saving config: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Logged in as '%s'\n", username)

			return nil
		},
	}

	cmd.Flags().StringVar(&apiEndpoint, "api-endpoint", "", "API endpoint URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted if omitted)")

	return cmd
}
