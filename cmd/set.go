package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// CreateSetCmd creates the set command.
func CreateSetCmd() *cobra.Command {
	var graphicsCard string
	var raw bool

	cmd := &cobra.Command{
		Use:   "set <value>",
		Short: "Set the brightness",
		Long: `Sets the brightness in percent (0-100), or writes the raw device value ` +
			`with --raw. Percentages are converted to the device range rounding half up.`,
		Args: cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			b, err := selectCard(graphicsCard)
			if err != nil {
				fmt.Fprintln(os.Stderr, "No supported graphics cards found.")
				os.Exit(exitNoCards)
			}

			if raw {
				if err := b.SetRaw(args[0]); err != nil {
					exitForSetError(err)
				}
				return
			}

			percent, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, "Value must be an integer.")
				os.Exit(exitNotAnInteger)
			}
			if err := b.SetPercent(percent); err != nil {
				exitForSetError(err)
			}
		},
	}

	cmd.Flags().StringVar(&graphicsCard, "graphics-card", "", "Graphics card to use")
	cmd.Flags().BoolVar(&raw, "raw", false, "Treat the value as a raw brightness")
	return cmd
}
