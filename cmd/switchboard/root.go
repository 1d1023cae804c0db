package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/switchboard-dev/switchboard/pkg/schema"
)

var rootCmd = &cobra.Command{
	Use:   "switchboard",
	Short: "Switchboard is a declarative agent-graph engine",
	Long:  `Switchboard validates customer agent graphs and resolves handoffs and tool invocations between conversational agents.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadGraphFile parses a graph document by file extension. Parsing includes
// full validation, so a non-nil graph is always usable.
func loadGraphFile(path string) (*schema.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return schema.ParseYAML(data)
	default:
		return schema.Parse(data)
	}
}
