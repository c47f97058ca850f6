package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"retrocalc/internal/engine"
)

var evalCmd = &cobra.Command{
	Use:   "eval KEYS...",
	Short: "Press a sequence of keys and print the display and log",
	Long: `eval feeds keys through the calculator exactly as if they were typed on the
keypad: digits and ".", the operators + - * x / × ÷, "=" for equals, "c" for
clear, "n" for sign and "%" for percent.

It prints the entry, the operation line, then the log newest first.`,
	Example: `  calc eval 3 + 4 =
  calc eval "12×3+1="`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds, err := engine.ParseKeys(strings.Join(args, " "))
		if err != nil {
			return err
		}

		display := &lineDisplay{}
		log := engine.NewLog(engine.MaxLogEntries)
		eng := engine.New(newClient(), display, log, logger)

		for _, c := range cmds {
			eng.Dispatch(cmd.Context(), c)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, display.entry)
		fmt.Fprintln(out, display.operation)
		for _, e := range log.Entries() {
			fmt.Fprintf(out, "[%s] %s\n", e.Status, e.Message)
		}
		return nil
	},
}

// lineDisplay keeps the last values pushed to the display.
type lineDisplay struct {
	entry     string
	operation string
}

func (d *lineDisplay) SetEntry(text string)     { d.entry = text }
func (d *lineDisplay) SetOperation(text string) { d.operation = text }
