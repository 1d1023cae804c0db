package schema

// Unreachable crawls the graph from the entry agent, following handoff
// targets and post-action targets, and returns the names of agents no
// session can ever reach, in declaration order.
//
// Unreachable agents are advisory, not a validation failure: a graph with
// dead agents still resolves correctly, it just carries dead weight.
func Unreachable(g *Graph) []string {
	entry, ok := g.Entry()
	if !ok {
		return nil
	}

	visited := map[string]bool{entry.Name: true}
	queue := []string{entry.Name}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		agent, ok := g.FindAgent(current)
		if !ok {
			continue
		}
		for i := range agent.Edges {
			target := agent.Edges[i].TargetAgent
			if target == "" || visited[target] {
				continue
			}
			visited[target] = true
			queue = append(queue, target)
		}
	}

	var dead []string
	for i := range g.Agents {
		if !visited[g.Agents[i].Name] {
			dead = append(dead, g.Agents[i].Name)
		}
	}
	return dead
}
