package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var weatherCmd = &cobra.Command{
	Use:   "weather [city] [date]",
	Short: "Print the forecast line used in venue prompts",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd.Context(), false)
		if err != nil {
			return err
		}
		hour := d.cfg.Weather.TargetHour
		fmt.Fprintln(cmd.OutOrStdout(), d.weather.WeatherLine(cmd.Context(), args[0], args[1], hour))
		fmt.Fprintln(cmd.OutOrStdout(), d.weather.ForecastSummary(cmd.Context(), args[0], args[1], hour))
		return nil
	},
}
