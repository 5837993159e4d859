// Package algo implements pathfinding, assignment, and deadlock resolution
// for the grid engine.
package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/progmat/internal/core"
)

// searchNode for the A*/greedy priority queue.
type searchNode struct {
	pos    core.Position
	g      int // cost so far
	f      int // priority (g+h for A*, h for greedy)
	order  int // push counter, breaks ties by insertion order
	parent *searchNode
	index  int // heap index
}

// searchHeap implements heap.Interface ordered by (f, order).
type searchHeap []*searchNode

func (h searchHeap) Len() int { return len(h) }
func (h searchHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].order < h[j].order
}
func (h searchHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *searchHeap) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *searchHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// FindPath computes a path from start to goal with the selected algorithm.
// Returns nil when no path exists or either endpoint is out of bounds.
func FindPath(grid *core.Grid, alg core.Algorithm, start, goal core.Position) core.Path {
	if !grid.InBounds(start) || !grid.InBounds(goal) {
		return nil
	}

	switch alg {
	case core.BFS:
		return bfs(grid, start, goal)
	case core.Greedy:
		return bestFirst(grid, start, goal, false)
	default:
		return bestFirst(grid, start, goal, true)
	}
}

type bfsNode struct {
	pos    core.Position
	parent *bfsNode
}

// bfs finds the unweighted shortest path by hop count. Visited on enqueue;
// the first dequeue of the goal is optimal.
func bfs(grid *core.Grid, start, goal core.Position) core.Path {
	queue := []*bfsNode{{pos: start}}
	visited := map[core.Position]bool{start: true}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.pos == goal {
			return reconstructBFS(current)
		}

		for _, n := range grid.Neighbors(current.pos) {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, &bfsNode{pos: n, parent: current})
			}
		}
	}

	return nil
}

func reconstructBFS(node *bfsNode) core.Path {
	var path core.Path
	for n := node; n != nil; n = n.parent {
		path = append(core.Path{n.pos}, path...)
	}
	return path
}

// bestFirst runs A* when weighted is true (f = g + h, unit step cost,
// Manhattan heuristic) and greedy best-first otherwise (f = h, accumulated
// cost ignored). Equal priorities break by push order so output is
// deterministic.
func bestFirst(grid *core.Grid, start, goal core.Position, weighted bool) core.Path {
	open := &searchHeap{}
	heap.Init(open)

	counter := 0
	startNode := &searchNode{
		pos: start,
		f:   core.ManhattanDistance(start, goal),
	}
	heap.Push(open, startNode)

	closed := make(map[core.Position]bool)
	gScores := map[core.Position]int{start: 0}

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)

		if current.pos == goal {
			return reconstructPath(current)
		}

		if closed[current.pos] {
			continue
		}
		closed[current.pos] = true

		for _, neighbor := range grid.Neighbors(current.pos) {
			if closed[neighbor] {
				continue
			}

			tentativeG := current.g + 1
			if weighted {
				if best, seen := gScores[neighbor]; seen && tentativeG >= best {
					continue
				}
				gScores[neighbor] = tentativeG
			}

			counter++
			f := core.ManhattanDistance(neighbor, goal)
			if weighted {
				f += tentativeG
			}
			heap.Push(open, &searchNode{
				pos:    neighbor,
				g:      tentativeG,
				f:      f,
				order:  counter,
				parent: current,
			})
		}
	}

	return nil
}

func reconstructPath(node *searchNode) core.Path {
	var path core.Path
	for n := node; n != nil; n = n.parent {
		path = append(core.Path{n.pos}, path...)
	}
	return path
}

// PlanPaths computes one path per assigned agent. Agents whose assignment
// entry is Unassigned get no entry in the result; a nil path entry records
// that the agent's target is unreachable. A nil assignment falls back to
// pairing agent i with target i.
func PlanPaths(grid *core.Grid, alg core.Algorithm, agents, targets []core.Position, assignment core.Assignment) map[int]core.Path {
	paths := make(map[int]core.Path)

	if assignment == nil {
		n := len(agents)
		if len(targets) < n {
			n = len(targets)
		}
		assignment = make(core.Assignment, len(agents))
		for i := range assignment {
			assignment[i] = core.Unassigned
			if i < n {
				assignment[i] = i
			}
		}
	}

	for agentIdx, targetIdx := range assignment {
		if agentIdx >= len(agents) || targetIdx < 0 || targetIdx >= len(targets) {
			continue
		}
		paths[agentIdx] = FindPath(grid, alg, agents[agentIdx], targets[targetIdx])
	}

	return paths
}
