package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/quotia-io/procure/internal/server"
	"github.com/quotia-io/procure/pkg/procure"
)

var errInvalidUserEntry = errors.New("user entry must be username:password")

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var (
		addr       string
		latency    time.Duration
		authSecret string
		users      []string
		origins    []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mock procurement API",
		Long: `Serve the in-memory mock backend over HTTP.

The server speaks the same envelope protocol as the hosted API, so the
dashboard or the api-mode CLI can be pointed at it during development.
Pass --auth-secret to require login; without it all routes are open.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userTable, err := buildUserTable(users)
			if err != nil {
				return err
			}

			zapLogger, err := newZapLogger()
			if err != nil {
				return err
			}
			defer func() { _ = zapLogger.Sync() }()

			srv := server.New(server.Config{
				Addr:         addr,
				AuthSecret:   authSecret,
				Users:        userTable,
				AllowOrigins: origins,
				Latency:      latency,
				Logger:       procure.NewZapLogger(zapLogger),
			})

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&latency, "latency", 0, "artificial response latency")
	cmd.Flags().StringVar(&authSecret, "auth-secret", "", "JWT signing secret (empty disables auth)")
	cmd.Flags().StringArrayVar(&users, "user", nil, "login user as username:password (repeatable)")
	cmd.Flags().StringArrayVar(&origins, "origin", nil, "allowed CORS origin (repeatable, empty allows all)")

	return cmd
}

// buildUserTable hashes username:password pairs into the server's user table.
func buildUserTable(users []string) (map[string]string, error) {
	if len(users) == 0 {
		return nil, nil
	}

	table := make(map[string]string, len(users))

	for _, entry := range users {
		username, password, ok := strings.Cut(entry, ":")
		if !ok || username == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidUserEntry, entry)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %q: %w", username, err)
		}

		table[username] = string(hash)
	}

	return table, nil
}

func newZapLogger() (*zap.Logger, error) {
	if viper.GetBool("verbose") {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("building logger: %w", err)
		}

		return logger, nil
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return logger, nil
}
