package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	switchboard "github.com/switchboard-dev/switchboard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of switchboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("switchboard version %s\n", strings.TrimSpace(switchboard.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
