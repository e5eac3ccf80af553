// Package workflow provides a small finite-state-machine runner used by the
// screening, outreach and reply-routing pipelines. A graph is a set of named
// nodes connected by linear or conditional edges; each run threads a single
// mutable state value through the nodes in order.
package workflow

import (
	"context"
	"fmt"
)

// End is the terminal pseudo-node. Edges and routers pointing at End stop the run.
const End = "__end__"

// NodeFunc executes one node against the shared workflow state. Nodes record
// failures in the state's error slot rather than returning them; the runner
// keeps walking the graph so downstream nodes can observe the slot and no-op.
type NodeFunc[S any] func(ctx context.Context, state S)

// RouteFunc picks the next node name (or End) after a conditional node runs.
type RouteFunc[S any] func(state S) string

// Graph is an ordered collection of nodes and the edges between them.
// It is built once and is safe to reuse across runs.
type Graph[S any] struct {
	entry   string
	nodes   map[string]NodeFunc[S]
	edges   map[string]string
	routers map[string]RouteFunc[S]
}

// New creates an empty graph.
func New[S any]() *Graph[S] {
	return &Graph[S]{
		nodes:   make(map[string]NodeFunc[S]),
		edges:   make(map[string]string),
		routers: make(map[string]RouteFunc[S]),
	}
}

// AddNode registers a named node.
func (g *Graph[S]) AddNode(name string, fn NodeFunc[S]) {
	g.nodes[name] = fn
}

// SetEntryPoint sets the node a run starts from.
func (g *Graph[S]) SetEntryPoint(name string) {
	g.entry = name
}

// AddEdge connects from to to unconditionally.
func (g *Graph[S]) AddEdge(from, to string) {
	g.edges[from] = to
}

// AddConditionalEdges routes from the given node via the router's return
// value. The router may return End for a silent no-op arm.
func (g *Graph[S]) AddConditionalEdges(from string, route RouteFunc[S]) {
	g.routers[from] = route
}

// Run executes the graph from the entry point until End. The returned error
// reports graph wiring problems only; node-level failures live in the state.
func (g *Graph[S]) Run(ctx context.Context, state S) error {
	if g.entry == "" {
		return fmt.Errorf("workflow: no entry point set")
	}

	current := g.entry
	// One visit per node is the ceiling for the acyclic graphs built here.
	for steps := 0; steps <= len(g.nodes); steps++ {
		if current == End {
			return nil
		}

		node, ok := g.nodes[current]
		if !ok {
			return fmt.Errorf("workflow: unknown node %q", current)
		}
		node(ctx, state)

		if route, ok := g.routers[current]; ok {
			current = route(state)
			continue
		}
		next, ok := g.edges[current]
		if !ok {
			// A node with no outgoing edge is terminal.
			return nil
		}
		current = next
	}
	return fmt.Errorf("workflow: cycle detected starting at %q", g.entry)
}
