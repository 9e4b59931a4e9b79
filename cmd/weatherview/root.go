package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"weatherview.app/internal/adapters/terminal"
	"weatherview.app/internal/app"
	"weatherview.app/internal/config"
	"weatherview.app/internal/core/preferences"
	"weatherview.app/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// cliState carries the application across the command lifecycle
type cliState struct {
	out    io.Writer
	errOut io.Writer

	force    bool
	app      *app.Application
	width    int
	terminal *preferences.WindowBounds
}

func newRootCommand(state *cliState) *cobra.Command {
	root := &cobra.Command{
		Use:   "weatherview",
		Short: "weatherview - Australian weather observations and forecasts",
		Long: `weatherview browses Bureau of Meteorology stations, shows their recent
observations and charts provider forecasts. Favourite stations are remembered.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.open(cmd.Context())
		},
	}
	root.PersistentFlags().BoolVarP(&state.force, "refresh", "r", false, "bypass cached data")

	root.AddCommand(
		newStatesCommand(state),
		newStationsCommand(state),
		newFavouritesCommand(state),
		newObservationsCommand(state),
		newForecastsCommand(state),
		newWatchCommand(state),
	)
	return root
}

func (s *cliState) open(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: s.errOut,
	})

	application, err := app.NewApplication(ctx, cfg, log.Logger)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	s.app = application

	s.width = terminal.DefaultWidth
	if width, height, ok := terminal.TerminalSize(s.out); ok {
		s.width = width
		s.terminal = &preferences.WindowBounds{Width: width, Height: height}
	} else if bounds, ok := application.Preferences().LoadWindowBounds(ctx); ok {
		s.width = bounds.Width
	}
	return nil
}

// close remembers the terminal size and shuts the application down
func (s *cliState) close() error {
	if s.app == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.terminal != nil {
		s.app.Preferences().SaveWindowBounds(ctx, *s.terminal)
	}
	err := s.app.Shutdown(ctx)
	s.app = nil
	return err
}
