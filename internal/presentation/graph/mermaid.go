package graph

import (
	"fmt"
	"strings"

	"github.com/switchboard-dev/switchboard/pkg/schema"
)

// Overlay contains dynamic session state to visualize on the graph.
type Overlay struct {
	VisitedAgents []string
	CurrentAgent  string
}

// GenerateMermaid produces a Mermaid flowchart from an agent graph.
// Semantic styling:
// - Entry agent: ((Circle))
// - Other agents: [Rectangle]
// - Handoff edges: solid labeled arrows
// - Tool edges: dotted arrows to a [[Subroutine]] tool node
// Overlay styles (Visited/Current) are applied if provided.
func GenerateMermaid(g *schema.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	entry, hasEntry := g.Entry()

	for _, agent := range g.Agents {
		safeID := sanitizeMermaidID(agent.Name)

		opener, closer := "[", "]"
		if hasEntry && agent.Name == entry.Name {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, agent.Name, closer))

		for _, edge := range agent.Edges {
			label := strings.ReplaceAll(edge.Name, "\"", "'")

			switch edge.Action {
			case schema.ActionHandoff:
				safeTo := sanitizeMermaidID(edge.TargetAgent)
				sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, label, safeTo))
			case schema.ActionTool:
				toolID := safeID + "_" + sanitizeMermaidID(edge.Name)
				sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", toolID, edge.Name))
				sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", safeID, label, toolID))
				if edge.TargetAgent != "" {
					safeTo := sanitizeMermaidID(edge.TargetAgent)
					sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", toolID, safeTo))
				}
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for high contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, name := range overlay.VisitedAgents {
			safeID := sanitizeMermaidID(name)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentAgent != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentAgent)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
