package cli

import (
	"context"
	"io"
	"os"

	"github.com/alexanderramin/dayframe/internal/coaching"
	"github.com/alexanderramin/dayframe/internal/config"
	"github.com/alexanderramin/dayframe/internal/llm"
	"github.com/alexanderramin/dayframe/internal/metrics"
	"github.com/alexanderramin/dayframe/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the configuration and services used by CLI commands.
type App struct {
	Config *config.Config
	LLM    llm.LLMConfig

	Store      coaching.Store
	Parking    service.ParkingService
	Plans      service.PlanService
	Challenges service.ChallengeService
	Profiles   service.ProfileService

	Metrics *metrics.Recorder

	// NewChatClient builds the model client for a conversation. Nil uses
	// llm.NewClient.
	NewChatClient func(cfg llm.LLMConfig, observer llm.Observer) (llm.ChatClient, error)

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// In is read by line-mode chat; nil means os.Stdin.
	In io.Reader

	// Log is built from the persistent flags unless set beforehand.
	Log *zap.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) input() io.Reader {
	if a.In != nil {
		return a.In
	}
	return os.Stdin
}

func (a *App) logger() *zap.Logger {
	if a.Log == nil {
		return zap.NewNop()
	}
	return a.Log
}

// NewRootCmd creates the top-level "dayframe" command and registers all
// subcommands against the provided App. Running it without a subcommand
// starts the check-in that fits the time of day.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool
	var metricsAddr string
	var stopMetrics context.CancelFunc

	root := &cobra.Command{
		Use:           "dayframe",
		Short:         "A daily planning coach for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Log == nil {
				log, err := newLogger(app.Config, verbose)
				if err != nil {
					return err
				}
				app.Log = log
			}
			if metricsAddr != "" && app.Metrics != nil {
				ctx, cancel := context.WithCancel(context.Background())
				stopMetrics = cancel
				go func() {
					if err := app.Metrics.Serve(ctx, metricsAddr, app.Log); err != nil {
						app.Log.Warn("metrics server stopped", zap.Error(err))
					}
				}()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if stopMetrics != nil {
				stopMetrics()
			}
			if app.Log != nil {
				_ = app.Log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckin(cmd, app, flowForTime(app.now()))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level and echo logs to stderr")
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	root.AddCommand(
		newCheckinCmd(app),
		newPlanCmd(app),
		newParkCmd(app),
		newChallengeCmd(app),
		newValuesCmd(app),
		newProfileCmd(app),
		newPromptCmd(app),
	)

	return root
}
