package main

import (
	"context"

	"github.com/spf13/cobra"
	"weatherview.app/internal/adapters/terminal"
	"weatherview.app/internal/models"
)

func newFavouritesCommand(state *cliState) *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		return state.showFavourites(cmd.Context(), terminal.NewStationsView(state.out, state.width))
	}

	favourites := &cobra.Command{
		Use:   "favourites",
		Short: "Manage favourite stations",
		Args:  cobra.NoArgs,
		RunE:  list,
	}

	favourites.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favourite stations",
			Args:  cobra.NoArgs,
			RunE:  list,
		},
		&cobra.Command{
			Use:     "add STATION_ID",
			Short:   "Add a station to the favourites",
			Example: "  weatherview favourites add IDV60801.94866",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				station, err := state.findStation(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				view := terminal.NewStationsView(state.out, state.width)
				presenter := state.app.NewStationsPresenter(view)
				defer presenter.Close()

				state.post(cmd.Context(), func() { presenter.AddFavouriteStation(station) })
				return state.showFavourites(cmd.Context(), view)
			},
		},
		&cobra.Command{
			Use:   "remove STATION_ID",
			Short: "Remove a station from the favourites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := stationID(args[0])
				if err != nil {
					return err
				}

				view := terminal.NewStationsView(state.out, state.width)
				presenter := state.app.NewStationsPresenter(view)
				defer presenter.Close()

				station := models.Station{ID: id}
				state.post(cmd.Context(), func() { presenter.RemoveFavouriteStation(station) })
				return state.showFavourites(cmd.Context(), view)
			},
		},
	)
	return favourites
}

func (s *cliState) showFavourites(ctx context.Context, view *terminal.StationsView) error {
	if view.Listener() == nil {
		presenter := s.app.NewStationsPresenter(view)
		defer presenter.Close()
	}

	if s.force {
		return s.drive(ctx, view, func() { view.Listener().LoadFavouriteStations(true) })
	}
	return s.drive(ctx, view, view.OnReady)
}
