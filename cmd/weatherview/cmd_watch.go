package main

import (
	"time"

	"github.com/spf13/cobra"
	"weatherview.app/internal/adapters/terminal"
	"weatherview.app/internal/ports"
)

func newWatchCommand(state *cliState) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch STATION_ID",
		Short: "Keep showing the observations of a station, refreshing periodically",
		Long: `watch prints the observations of a station and reloads them on an interval
until interrupted. The diagnostics server runs alongside when DIAGNOSTICS_ADDR is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			station, err := state.findStation(ctx, args[0])
			if err != nil {
				return err
			}

			if err := state.app.StartDiagnostics(ctx); err != nil {
				return err
			}

			view := terminal.NewObservationsView(state.out, state.width)
			presenter := state.app.NewObservationsPresenter(view)
			defer presenter.Close()

			if err := state.drive(ctx, view, func() { view.OnReady(station) }); err != nil {
				state.app.Logger().Warn("Initial load failed", ports.F("station_id", station.ID), ports.F("error", err.Error()))
			}

			err = state.app.StartRefresh("observations", interval, func() {
				view.Reset()
				view.Refresh(station)
			})
			if err != nil {
				return err
			}

			state.app.EventLoop().Run(ctx)
			return nil
		},
	}
	cmd.Flags().DurationVarP(&interval, "interval", "i", 10*time.Minute, "refresh interval")
	return cmd
}
