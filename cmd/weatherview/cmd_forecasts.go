package main

import (
	"github.com/spf13/cobra"
	"weatherview.app/internal/adapters/terminal"
)

func newForecastsCommand(state *cliState) *cobra.Command {
	var site string

	cmd := &cobra.Command{
		Use:     "forecasts STATION_ID",
		Short:   "Show and chart the forecasts of a station",
		Example: "  weatherview forecasts IDV60801.94866 --site forecastio",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			station, err := state.findStation(ctx, args[0])
			if err != nil {
				return err
			}

			view := terminal.NewForecastsView(state.out, state.width, state.app.ChartOptions())
			presenter := state.app.NewForecastsPresenter(view)
			defer presenter.Close()

			if site != "" {
				state.post(ctx, func() { view.SelectSite(site) })
				if err := view.Err(); err != nil {
					return err
				}
				state.app.RememberForecastSite(ctx)
			}

			if state.force {
				return state.drive(ctx, view, func() { presenter.LoadForecasts(station, true) })
			}
			return state.drive(ctx, view, func() { view.OnReady(station) })
		},
	}
	cmd.Flags().StringVarP(&site, "site", "s", "", "forecast provider (openweathermap or forecastio), remembered for later runs")
	return cmd
}
