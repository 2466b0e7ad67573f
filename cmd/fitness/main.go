// Package main implements the fitness CLI: log activities, browse them and read
// the AI recommendations the backend generates for them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"example.com/fitnessclient/internal/activity"
	"example.com/fitnessclient/internal/config"
	"example.com/fitnessclient/internal/detail"
	"example.com/fitnessclient/internal/logging"
	"example.com/fitnessclient/internal/recommendation"
	"example.com/fitnessclient/internal/session"
	httptransport "example.com/fitnessclient/internal/transport/http"
	"example.com/fitnessclient/internal/user"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	root := newRootCmd(out, errOut)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		var shown reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintln(errOut, "Error:", err)
		}
		return 1
	}
	return 0
}

// app holds what every subcommand needs once configuration is resolved.
type app struct {
	cfg             *config.Config
	logger          *zap.Logger
	store           session.Store
	client          *httptransport.Client
	activities      *activity.Repository
	recommendations *recommendation.Repository
	users           *user.Repository
	details         *detail.Aggregator
	out             io.Writer
	errOut          io.Writer
}

type rootFlags struct {
	configPath string
	apiURL     string
	logLevel   string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	flags := &rootFlags{}
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "fitness",
		Short: "Track workouts and read AI recommendations",
		Long: `fitness talks to the fitness backend on behalf of the signed-in user.

Examples:
  # Sign in with a bearer token issued by the identity provider
  fitness login --token "$TOKEN"

  # Log a run and list everything
  fitness activities add --type running --duration 30 --calories 300
  fitness activities list

  # Show one activity and wait for its recommendation
  fitness activities watch <activity-id>`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup(flags)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "backend base URL (overrides config)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides config)")

	root.AddCommand(newLoginCmd(a), newLogoutCmd(a), newWhoamiCmd(a))
	root.AddCommand(newActivitiesCmd(a))
	root.AddCommand(newRecommendationsCmd(a))
	root.AddCommand(newUsersCmd(a))

	return root
}

func (a *app) setup(flags *rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.apiURL != "" {
		cfg.API.BaseURL = flags.apiURL
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	logger, err := logging.NewWithWriter(a.errOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.store = session.NewFileStore(cfg.Session.File)
	a.client = httptransport.NewClient(
		httptransport.ClientConfig{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout},
		a.store,
		httptransport.WithLogger(logger.Named("transport")),
		httptransport.WithNavigator(httptransport.NavigatorFunc(a.signedOut)),
	)
	a.activities = activity.NewRepository(a.client)
	a.recommendations = recommendation.NewRepository(a.client)
	a.users = user.NewRepository(a.client)
	a.details = detail.NewAggregator(a.activities, a.recommendations, detail.WithLogger(logger.Named("detail")))
	return nil
}

// signedOut is the CLI's unauthenticated root: the session is already gone, so
// point the user back at login.
func (a *app) signedOut() {
	fmt.Fprintln(a.errOut, "Your session has expired. Run `fitness login` to sign in again.")
}

// requireSession returns the stored credential or an error asking the user to log in.
func (a *app) requireSession() (session.Credential, error) {
	cred, ok := a.store.Get()
	if !ok {
		return session.Credential{}, fmt.Errorf("not signed in; run `fitness login` first")
	}
	return cred, nil
}
