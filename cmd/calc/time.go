package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"retrocalc/internal/clock"
)

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Print the server clock once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		poller := clock.NewPoller(newClient(), func(text string) { fmt.Fprintln(out, text) },
			clock.WithInterval(viper.GetDuration("clock_interval")),
			clock.WithLogger(logger),
		)
		poller.Tick(cmd.Context())
		return nil
	},
}
