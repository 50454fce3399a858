package cmd

import (
	"fmt"

	"github.com/rnwolfe/tally/internal/version"
	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tally version",
	RunE:  runVersion,
}

func runVersion(_ *cobra.Command, _ []string) error {
	if versionShort {
		fmt.Println(version.Short())
	} else {
		fmt.Printf("tally %s\n", version.Full())
	}
	return nil
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}
