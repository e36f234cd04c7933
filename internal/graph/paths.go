package graph

import (
	"math"

	"github.com/samdwyer/dungeongrow/internal/world"
)

// Result holds single-source shortest distances and the parent tree.
type Result struct {
	g          *Graph
	Source     *world.Room
	dist       []float64
	parent     []int
	parentEdge []world.Edge
	order      []int // nodes in the order they were settled
}

// ShortestPaths runs Dijkstra from src. Node selection is a linear scan over
// the insertion-ordered rooms, so equal distances resolve to the earlier room.
func (g *Graph) ShortestPaths(src *world.Room) *Result {
	n := len(g.rooms)
	res := &Result{
		g:          g,
		Source:     src,
		dist:       make([]float64, n),
		parent:     make([]int, n),
		parentEdge: make([]world.Edge, n),
		order:      make([]int, 0, n),
	}
	for i := range res.dist {
		res.dist[i] = math.Inf(1)
		res.parent[i] = -1
	}
	s, ok := g.index[src]
	if !ok {
		return res
	}
	res.dist[s] = 0

	settled := make([]bool, n)
	for {
		u := -1
		for i := 0; i < n; i++ {
			if settled[i] || math.IsInf(res.dist[i], 1) {
				continue
			}
			if u < 0 || res.dist[i] < res.dist[u] {
				u = i
			}
		}
		if u < 0 {
			break
		}
		settled[u] = true
		res.order = append(res.order, u)

		for _, nb := range g.adj[u] {
			v := g.index[nb.Room]
			if settled[v] {
				continue
			}
			if d := res.dist[u] + nb.Weight; d < res.dist[v] {
				res.dist[v] = d
				res.parent[v] = u
				res.parentEdge[v] = nb.Edge
			}
		}
	}
	return res
}

// Distance returns the shortest distance to r and whether r is reachable.
func (r *Result) Distance(room *world.Room) (float64, bool) {
	i, ok := r.g.index[room]
	if !ok || math.IsInf(r.dist[i], 1) {
		return 0, false
	}
	return r.dist[i], true
}

// Farthest returns the reachable room with the greatest distance. The first
// room settled at that distance wins.
func (r *Result) Farthest() (*world.Room, float64) {
	best := -1
	for _, i := range r.order {
		if best < 0 || r.dist[i] > r.dist[best] {
			best = i
		}
	}
	if best < 0 {
		return nil, 0
	}
	return r.g.rooms[best], r.dist[best]
}

// PathTo returns the rooms and edges from the source to room, source first.
// It returns nil slices when room is unreachable.
func (r *Result) PathTo(room *world.Room) ([]*world.Room, []world.Edge) {
	i, ok := r.g.index[room]
	if !ok || math.IsInf(r.dist[i], 1) {
		return nil, nil
	}
	var rooms []*world.Room
	var edges []world.Edge
	for ; i >= 0; i = r.parent[i] {
		rooms = append(rooms, r.g.rooms[i])
		if r.parent[i] >= 0 {
			edges = append(edges, r.parentEdge[i])
		}
	}
	for a, b := 0, len(rooms)-1; a < b; a, b = a+1, b-1 {
		rooms[a], rooms[b] = rooms[b], rooms[a]
	}
	for a, b := 0, len(edges)-1; a < b; a, b = a+1, b-1 {
		edges[a], edges[b] = edges[b], edges[a]
	}
	return rooms, edges
}

// Diameter approximates the endpoints of the weighted tree diameter with two
// sweeps: the farthest room from the first room, then the farthest room from
// that one. It reports false when there are fewer than two rooms or the second
// sweep reaches nothing but its own source.
func (g *Graph) Diameter() (world.MainPath, bool) {
	if len(g.rooms) < 2 {
		return world.MainPath{}, false
	}
	first, _ := g.ShortestPaths(g.rooms[0]).Farthest()
	sweep := g.ShortestPaths(first)
	last, length := sweep.Farthest()
	if last == nil || last == first {
		return world.MainPath{}, false
	}
	rooms, edges := sweep.PathTo(last)
	return world.MainPath{
		First:  first,
		Last:   last,
		Rooms:  rooms,
		Edges:  edges,
		Length: length,
	}, true
}
