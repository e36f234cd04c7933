// Package graph turns the room tree into a weighted adjacency structure and
// finds the main path through it.
package graph

import (
	"math"

	"github.com/samdwyer/dungeongrow/internal/geom"
	"github.com/samdwyer/dungeongrow/internal/world"
)

// Neighbor is one weighted adjacency entry.
type Neighbor struct {
	Room   *world.Room
	Edge   world.Edge
	Weight float64
}

// Graph is a weighted undirected graph over rooms. Node order follows the room
// slice it was built from, which fixes every tie-break.
type Graph struct {
	rooms []*world.Room
	index map[*world.Room]int
	adj   [][]Neighbor
}

// Weight returns the cost of walking an edge: the ground-plane distance between
// its openings plus the per-room traversal cost (never negative).
func Weight(e world.Edge, traversalCost float64) float64 {
	return geom.PlanarDistance(e.A.Position(), e.B.Position()) + math.Max(0, traversalCost)
}

// Build creates a graph with every room as a node, including rooms no edge touches.
// Edges whose rooms are not in rooms are ignored.
func Build(rooms []*world.Room, edges []world.Edge, traversalCost float64) *Graph {
	g := &Graph{
		rooms: rooms,
		index: make(map[*world.Room]int, len(rooms)),
		adj:   make([][]Neighbor, len(rooms)),
	}
	for i, r := range rooms {
		g.index[r] = i
	}
	for _, e := range edges {
		a, b := e.Rooms()
		ia, okA := g.index[a]
		ib, okB := g.index[b]
		if !okA || !okB {
			continue
		}
		w := Weight(e, traversalCost)
		g.adj[ia] = append(g.adj[ia], Neighbor{Room: b, Edge: e, Weight: w})
		g.adj[ib] = append(g.adj[ib], Neighbor{Room: a, Edge: e, Weight: w})
	}
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.rooms)
}

// Neighbors returns the adjacency list of r.
func (g *Graph) Neighbors(r *world.Room) []Neighbor {
	i, ok := g.index[r]
	if !ok {
		return nil
	}
	return g.adj[i]
}
