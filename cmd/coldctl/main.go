// Command coldctl is the store admin's command-line client for the cold
// storage API.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sheikh-saqib/cold-storage-ledger/internal/client"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/config"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/logging"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/session"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/storage/file"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is built once per invocation by the root command.
type app struct {
	session *session.Container
	api     *client.Client
	logger  *zap.Logger
}

var (
	verbose bool
	apiURL  string
	current *app
)

var rootCmd = &cobra.Command{
	Use:           "coldctl",
	Short:         "Cold storage admin client",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()
		cfg := config.LoadClient()
		if apiURL != "" {
			cfg.APIURL = apiURL
		}

		logger, err := logging.NewDevelopment(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}

		kv, err := file.NewStore(filepath.Join(cfg.SessionDir, "storage"))
		if err != nil {
			return err
		}
		storage := session.NewExpiringStorage(kv, session.WithStorageLogger(logger))
		sess := session.NewContainer(storage, logger)
		sess.Hydrate()

		current = &app{
			session: sess,
			api:     client.New(cfg.APIURL, sess, logger),
			logger:  logger,
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil {
			_ = current.logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (default $COLDCTL_API_URL)")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, ledgersCmd, balancesCmd, voucherCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// requireSession fails when nobody is signed in.
func requireSession() error {
	if !current.session.IsAuthenticated() {
		return fmt.Errorf("not logged in, run `coldctl login`")
	}
	return nil
}
