// Package cmd holds the cobra subcommands: one-shot get/set/list
// operations and self-update. The daemon runs on the root command.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/homeinfogmbh/backlight/internal/backlight"
)

// Exit codes, kept stable for scripting.
const (
	exitInvalidPercent = 1
	exitNotAnInteger   = 2
	exitNoCards        = 3
	exitNoPermission   = 4
)

// selectCard picks the backlight for one-shot commands: the pinned card
// when --graphics-card is given, otherwise the first usable one.
func selectCard(graphicsCard string) (*backlight.Backlight, error) {
	var pool []string
	if graphicsCard != "" {
		pool = []string{graphicsCard}
	}
	return backlight.Select(pool)
}

// CreateGetCmd creates the get command.
func CreateGetCmd() *cobra.Command {
	var graphicsCard string
	var raw bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current brightness",
		Long:  `Prints the current brightness in percent, or the raw device value with --raw.`,
		Run: func(_ *cobra.Command, _ []string) {
			b, err := selectCard(graphicsCard)
			if err != nil {
				fmt.Fprintln(os.Stderr, "No supported graphics cards found.")
				os.Exit(exitNoCards)
			}

			if raw {
				value, err := b.Raw()
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(1)
				}
				fmt.Println(value)
				return
			}

			percent, err := b.Percent()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Println(percent)
		},
	}

	cmd.Flags().StringVar(&graphicsCard, "graphics-card", "", "Graphics card to use")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the raw brightness value")
	return cmd
}

// exitForSetError maps a write failure to the stable exit codes.
func exitForSetError(err error) {
	var rangeErr *backlight.RangeError
	switch {
	case errors.As(err, &rangeErr):
		fmt.Fprintf(os.Stderr, "Invalid brightness: %s.\n", rangeErr.Value)
		os.Exit(exitInvalidPercent)
	case errors.Is(err, os.ErrPermission):
		fmt.Fprintln(os.Stderr, "Cannot set brightness. Try running as root.")
		os.Exit(exitNoPermission)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
