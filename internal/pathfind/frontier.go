package pathfind

import "github.com/vovakirdan/snake-astar/internal/grid"

// node is a cell annotated with search costs. Nodes live only for the
// duration of one Search call.
type node struct {
	cell   grid.Cell
	g      int   // Cost from start
	h      int   // Manhattan estimate to goal
	f      int   // g + h
	parent *node // nil for the start node
	seq    int   // Discovery order, last tie-break
	index  int   // Position in the heap, -1 once popped
}

// frontier implements heap.Interface as a min-heap on f, then h, then
// discovery order, which makes every search fully deterministic.
type frontier []*node

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (q frontier) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *frontier) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *frontier) Pop() any {
	old := *q
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*q = old[:last]
	return n
}
