package main

import (
	"github.com/spf13/cobra"
	"weatherview.app/internal/adapters/terminal"
)

func newStatesCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List the states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := terminal.NewStationsView(state.out, state.width)
			presenter := state.app.NewStationsPresenter(view)
			defer presenter.Close()

			return state.drive(cmd.Context(), view, func() {
				view.Listener().LoadStates(state.force)
			})
		},
	}
}

func newStationsCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:     "stations STATE",
		Short:   "List the stations of a state",
		Example: "  weatherview stations VIC",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := stateCode(args[0])
			if err != nil {
				return err
			}

			view := terminal.NewStationsView(state.out, state.width)
			presenter := state.app.NewStationsPresenter(view)
			defer presenter.Close()

			return state.drive(cmd.Context(), view, func() {
				view.Listener().LoadStations(code, state.force)
			})
		},
	}
}
