package graph

import (
	"github.com/zyedidia/generic/mapset"
)

// WeaklyConnected reports whether every node can reach every other node when edge
// direction is ignored. An empty graph is not connected.
func (g *STG) WeaklyConnected() bool {
	if len(g.nodes) == 0 {
		return false
	}
	return g.undirectedReach(0).Size() == len(g.nodes)
}

// Components returns the number of weakly connected components
func (g *STG) Components() int {
	seen := mapset.New[int]()
	count := 0
	for i := range g.nodes {
		if seen.Has(i) {
			continue
		}
		count++
		g.undirectedReach(i).Each(func(j int) {
			seen.Put(j)
		})
	}
	return count
}

// undirectedReach collects every node index reachable from start ignoring edge direction
func (g *STG) undirectedReach(start int) mapset.Set[int] {
	visited := mapset.New[int]()
	queue := []int{start}
	visited.Put(start)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, list := range [][]int{g.succ[current], g.pred[current]} {
			for _, n := range list {
				if !visited.Has(n) {
					visited.Put(n)
					queue = append(queue, n)
				}
			}
		}
	}

	return visited
}

// Reachable reports whether to can be reached from from following edge direction
func (g *STG) Reachable(from, to Node) bool {
	a, okA := g.index[from]
	b, okB := g.index[to]
	if !okA || !okB {
		return false
	}
	if a == b {
		return true
	}

	visited := mapset.New[int]()
	queue := []int{a}
	visited.Put(a)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range g.succ[current] {
			if n == b {
				return true
			}
			if !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}

	return false
}
