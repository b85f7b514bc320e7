// Package orggraph provides an in-memory adjacency-list view of the employee
// reporting tree. A graph is built per request from a snapshot and is
// read-only afterwards.
package orggraph

import "sort"

// IDSet is a set of employee ids.
type IDSet map[int64]struct{}

func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id int64) {
	s[id] = struct{}{}
}

func (s IDSet) Len() int { return len(s) }

// Intersect returns the ids present in both sets.
func (s IDSet) Intersect(other IDSet) IDSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(IDSet, len(small))
	for id := range small {
		if large.Contains(id) {
			out.Add(id)
		}
	}
	return out
}

// Slice returns the ids in ascending order.
func (s IDSet) Slice() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Node is one employee with its back-reference to a supervisor.
type Node struct {
	ID        int64
	ReportsTo *int64
}

type Graph struct {
	children map[int64][]int64
	nodes    map[int64]struct{}
}

func Build(nodes []Node) *Graph {
	g := &Graph{
		children: make(map[int64][]int64, len(nodes)),
		nodes:    make(map[int64]struct{}, len(nodes)),
	}
	for _, n := range nodes {
		g.nodes[n.ID] = struct{}{}
		if n.ReportsTo != nil {
			g.children[*n.ReportsTo] = append(g.children[*n.ReportsTo], n.ID)
		}
	}
	return g
}

func (g *Graph) Contains(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

// DirectReports returns the employees reporting straight to the given id.
func (g *Graph) DirectReports(id int64) []int64 {
	out := make([]int64, len(g.children[id]))
	copy(out, g.children[id])
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Subtree returns the transitive closure of reports under root, including the
// root itself. An unknown root yields an empty set. Traversal is BFS with a
// visited set, so a corrupted cyclic hierarchy cannot loop forever.
func (g *Graph) Subtree(root int64) IDSet {
	out := IDSet{}
	if !g.Contains(root) {
		return out
	}
	queue := []int64{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if out.Contains(current) {
			continue
		}
		out.Add(current)
		queue = append(queue, g.children[current]...)
	}
	return out
}
