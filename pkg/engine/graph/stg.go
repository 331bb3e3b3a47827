// Package graph builds the state-transition graph (STG) over one or more floors and
// answers reachability questions on it.
package graph

import (
	"fmt"
)

// Node is a traversable cell: floor index plus grid position
type Node struct {
	Floor int
	Row   int
	Col   int
}

// String returns the node as floor:row,col
func (n Node) String() string {
	return fmt.Sprintf("%d:%d,%d", n.Floor, n.Row, n.Col)
}

// STG is a directed graph of single-step moves between traversable cells.
// Nodes keep insertion order (floor, then row-major) so traversals are deterministic.
type STG struct {
	nodes []Node
	index map[Node]int
	succ  [][]int
	pred  [][]int
	edges int
}

func newSTG() *STG {
	return &STG{index: make(map[Node]int)}
}

func (g *STG) addNode(n Node) {
	if _, ok := g.index[n]; ok {
		return
	}
	g.index[n] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.succ = append(g.succ, nil)
	g.pred = append(g.pred, nil)
}

func (g *STG) addEdge(from, to Node) {
	a, okA := g.index[from]
	b, okB := g.index[to]
	if !okA || !okB {
		return
	}
	for _, s := range g.succ[a] {
		if s == b {
			return
		}
	}
	g.succ[a] = append(g.succ[a], b)
	if a != b {
		g.pred[b] = append(g.pred[b], a)
	}
	g.edges++
}

// NumNodes returns the number of nodes
func (g *STG) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of directed edges, self-loops included
func (g *STG) NumEdges() int {
	return g.edges
}

// Nodes returns a copy of all nodes in insertion order
func (g *STG) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// HasNode returns true if n is a node of the graph
func (g *STG) HasNode(n Node) bool {
	_, ok := g.index[n]
	return ok
}

// HasEdge returns true if the directed edge from -> to exists
func (g *STG) HasEdge(from, to Node) bool {
	a, okA := g.index[from]
	b, okB := g.index[to]
	if !okA || !okB {
		return false
	}
	for _, s := range g.succ[a] {
		if s == b {
			return true
		}
	}
	return false
}

// Successors returns the nodes reachable from n in one move, or nil if n is not in the graph
func (g *STG) Successors(n Node) []Node {
	i, ok := g.index[n]
	if !ok {
		return nil
	}
	out := make([]Node, 0, len(g.succ[i]))
	for _, s := range g.succ[i] {
		out = append(out, g.nodes[s])
	}
	return out
}
