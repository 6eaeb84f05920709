package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/homeinfogmbh/backlight/internal/backlight"
)

// CreateListCmd creates the list command.
func CreateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backlight devices",
		Long:  `Lists all candidate devices under ` + backlight.DefaultDir + ` and whether each supports the backlight API.`,
		Run: func(_ *cobra.Command, _ []string) {
			root := backlight.NewRoot(backlight.DefaultDir)

			names, err := root.Devices()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}

			for _, name := range names {
				support := "unsupported"
				if root.SupportsAPI(name) {
					support = "supported"
				}
				fmt.Printf("%s\t%s\n", name, support)
			}
		},
	}
}
