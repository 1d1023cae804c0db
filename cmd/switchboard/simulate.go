package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/switchboard-dev/switchboard/internal/presentation/tui"
	"github.com/switchboard-dev/switchboard/pkg/resolver"
	"github.com/switchboard-dev/switchboard/pkg/schema"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate <file>",
	Short: "Walk an agent graph interactively",
	Long:  `Starts at the entry agent and lets you trigger edges by name, showing each handoff and tool invocation as the host would see them.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if err := runSimulate(args[0], plain); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Bool("plain", false, "Disable markdown rendering and the banner")
}

func runSimulate(path string, plain bool) error {
	g, err := loadGraphFile(path)
	if err != nil {
		return err
	}

	// Fall back to plain output when stdin is not a terminal, e.g. piped input.
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && !plain

	render := func(markdown string) (string, error) { return markdown, nil }
	if interactive {
		tui.PrintBanner()
		render = tui.NewRenderer()
	}

	res := resolver.New()
	current, err := res.Initialize(g)
	if err != nil {
		return err
	}

	printAgent := func(state resolver.AgentState) {
		fmt.Printf("== %s ==\n", state.Name)
		if state.OnEnterPrompt != "" {
			out, err := render(state.OnEnterPrompt)
			if err != nil {
				out = state.OnEnterPrompt
			}
			fmt.Println(out)
		}
		agent, _ := g.FindAgent(state.Name)
		if agent == nil || len(agent.Edges) == 0 {
			return
		}
		fmt.Println("Edges:")
		for _, edge := range agent.Edges {
			switch edge.Action {
			case schema.ActionHandoff:
				fmt.Printf("  %s -> %s\n", edge.Name, edge.TargetAgent)
			case schema.ActionTool:
				if edge.TargetAgent != "" {
					fmt.Printf("  %s (tool, then -> %s)\n", edge.Name, edge.TargetAgent)
				} else {
					fmt.Printf("  %s (tool)\n", edge.Name)
				}
			}
		}
	}

	printAgent(current)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return nil
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Println("Bye!")
			return nil
		}

		transition, err := res.ResolveEdge(g, current.Name, input)
		if err != nil {
			var ambErr *resolver.AmbiguousEdgeError
			if !errors.As(err, &ambErr) {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Warning: %v\n", ambErr)
		}

		switch transition.Kind {
		case resolver.KindHandoff:
			fmt.Printf("Handoff: %s -> %s\n", current.Name, transition.Target.Name)
			current = *transition.Target
			printAgent(current)
		case resolver.KindToolInvocation:
			fmt.Printf("Tool invocation: %s (executed by the host)\n", transition.ToolName)
			if transition.Target != nil {
				fmt.Printf("Follow-up handoff: %s -> %s\n", current.Name, transition.Target.Name)
				current = *transition.Target
				printAgent(current)
			}
		}
	}
}
