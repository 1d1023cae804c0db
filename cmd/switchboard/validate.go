package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/switchboard-dev/switchboard/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an agent graph for consistency",
	Long:  `Parses a graph document (JSON or YAML) and reports shape, uniqueness, referential integrity, and content safety violations.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		g, err := loadGraphFile(args[0])
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Graph is valid! ✅")

		if dead := schema.Unreachable(g); len(dead) > 0 {
			fmt.Printf("Warning: unreachable agents: %s\n", strings.Join(dead, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
