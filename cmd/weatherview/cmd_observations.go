package main

import (
	"github.com/spf13/cobra"
	"weatherview.app/internal/adapters/terminal"
)

func newObservationsCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:     "observations STATION_ID",
		Short:   "Show the recent observations of a station",
		Example: "  weatherview observations IDV60801.94866",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			station, err := state.findStation(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			view := terminal.NewObservationsView(state.out, state.width)
			presenter := state.app.NewObservationsPresenter(view)
			defer presenter.Close()

			if state.force {
				return state.drive(cmd.Context(), view, func() { view.Refresh(station) })
			}
			return state.drive(cmd.Context(), view, func() { view.OnReady(station) })
		},
	}
}
