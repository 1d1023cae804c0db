package schema

import "testing"

func TestGraph_FindAgent(t *testing.T) {
	g := intakeGraph()

	agent, ok := g.FindAgent("SpecialistAgent")
	if !ok {
		t.Fatal("FindAgent(SpecialistAgent) not found")
	}
	if agent.Name != "SpecialistAgent" {
		t.Errorf("Name = %q, want SpecialistAgent", agent.Name)
	}

	if _, ok := g.FindAgent("GhostAgent"); ok {
		t.Error("FindAgent(GhostAgent) should not be found")
	}
}

func TestGraph_Entry(t *testing.T) {
	g := intakeGraph()

	entry, ok := g.Entry()
	if !ok || entry.Name != "IntakeAgent" {
		t.Fatalf("Entry() = %v, %v; want first declared agent", entry, ok)
	}

	// Explicit flag overrides declaration order.
	g.Agents[1].IsEntry = true
	entry, ok = g.Entry()
	if !ok || entry.Name != "SpecialistAgent" {
		t.Fatalf("Entry() = %v, %v; want flagged agent", entry, ok)
	}

	empty := &Graph{CustomerID: "customer_1"}
	if _, ok := empty.Entry(); ok {
		t.Error("Entry() on empty graph should report not ok")
	}
}

func TestAgent_FindEdge(t *testing.T) {
	g := intakeGraph()
	agent, _ := g.FindAgent("IntakeAgent")

	edge, ok := agent.FindEdge("transfer_to_specialist")
	if !ok {
		t.Fatal("FindEdge(transfer_to_specialist) not found")
	}
	if edge.TargetAgent != "SpecialistAgent" {
		t.Errorf("TargetAgent = %q, want SpecialistAgent", edge.TargetAgent)
	}

	if _, ok := agent.FindEdge("nonexistent_edge"); ok {
		t.Error("FindEdge(nonexistent_edge) should not be found")
	}
}

func TestGraph_Clone_Isolation(t *testing.T) {
	g := intakeGraph()
	clone := g.Clone()

	clone.Agents[0].Name = "Mutated"
	clone.Agents[0].Edges[0].TargetAgent = "Mutated"
	clone.Agents[1].Tools[0] = "mutated_tool"

	if g.Agents[0].Name != "IntakeAgent" {
		t.Error("clone mutation leaked into original agent name")
	}
	if g.Agents[0].Edges[0].TargetAgent != "SpecialistAgent" {
		t.Error("clone mutation leaked into original edges")
	}
	if g.Agents[1].Tools[0] != "lookup_ticket" {
		t.Error("clone mutation leaked into original tools")
	}
}

func TestGraph_Clone_Nil(t *testing.T) {
	var g *Graph
	if g.Clone() != nil {
		t.Error("Clone() on nil graph should return nil")
	}
}
