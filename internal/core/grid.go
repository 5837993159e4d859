package core

// Grid size bounds.
const (
	MinSize     = 5
	MaxSize     = 20
	DefaultSize = 10
)

// Position is a grid coordinate.
type Position struct {
	Row, Col int
}

// ManhattanDistance is |Δrow| + |Δcol|.
func ManhattanDistance(a, b Position) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Grid owns the cell array and the agent/target/wall position lists.
// Invariant: a position holds AgentCell in the array iff it appears in
// Agents exactly once, and likewise for targets and walls.
type Grid struct {
	Rows, Cols int
	Cells      [][]Cell
	Agents     []Position // order = agent index
	Targets    []Position
	Walls      []Position
	Topology   Topology
}

// NewGrid creates an empty rows x cols grid. Dimensions are clamped to
// [MinSize, MaxSize].
func NewGrid(rows, cols int) *Grid {
	rows = clampSize(rows)
	cols = clampSize(cols)
	g := &Grid{Rows: rows, Cols: cols, Topology: VonNeumann}
	g.Cells = makeCells(rows, cols)
	return g
}

func clampSize(n int) int {
	if n < MinSize {
		return MinSize
	}
	if n > MaxSize {
		return MaxSize
	}
	return n
}

func makeCells(rows, cols int) [][]Cell {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return cells
}

// InBounds reports whether pos is inside the grid.
func (g *Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Rows && pos.Col >= 0 && pos.Col < g.Cols
}

// CellAt returns the cell at pos, or Empty, false when out of bounds.
func (g *Grid) CellAt(pos Position) (Cell, bool) {
	if !g.InBounds(pos) {
		return Empty, false
	}
	return g.Cells[pos.Row][pos.Col], true
}

// SetCell writes a cell, keeping the position lists consistent. Idempotent;
// out-of-bounds positions are rejected.
func (g *Grid) SetCell(pos Position, c Cell) bool {
	if !g.InBounds(pos) {
		return false
	}

	switch g.Cells[pos.Row][pos.Col] {
	case AgentCell:
		g.Agents = removePosition(g.Agents, pos)
	case TargetCell:
		g.Targets = removePosition(g.Targets, pos)
	case WallCell:
		g.Walls = removePosition(g.Walls, pos)
	}

	switch c {
	case AgentCell:
		g.Agents = append(g.Agents, pos)
	case TargetCell:
		g.Targets = append(g.Targets, pos)
	case WallCell:
		g.Walls = append(g.Walls, pos)
	}

	g.Cells[pos.Row][pos.Col] = c
	return true
}

func removePosition(list []Position, pos Position) []Position {
	for i, p := range list {
		if p == pos {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Neighbors returns adjacent positions under the current topology, excluding
// out-of-bounds positions and walls. Positions occupied by other agents are
// included: path existence is about static obstacles, collision avoidance is
// a later pass.
func (g *Grid) Neighbors(pos Position) []Position {
	directions := [][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	if g.Topology == Moore {
		directions = append(directions, [2]int{1, 1}, [2]int{1, -1}, [2]int{-1, -1}, [2]int{-1, 1})
	}

	neighbors := make([]Position, 0, len(directions))
	for _, d := range directions {
		n := Position{Row: pos.Row + d[0], Col: pos.Col + d[1]}
		if g.InBounds(n) && g.Cells[n.Row][n.Col] != WallCell {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Resize changes the grid dimensions, preserving overlapping cell contents
// and dropping out-of-bounds agents, targets, and walls. Any in-progress
// plan is invalidated by the caller (the scheduler resets on edit).
func (g *Grid) Resize(rows, cols int) {
	rows = clampSize(rows)
	cols = clampSize(cols)

	old := g.Cells
	oldRows, oldCols := g.Rows, g.Cols
	g.Rows, g.Cols = rows, cols
	g.Cells = makeCells(rows, cols)

	copyRows := min(oldRows, rows)
	copyCols := min(oldCols, cols)
	for r := 0; r < copyRows; r++ {
		copy(g.Cells[r][:copyCols], old[r][:copyCols])
	}

	g.Agents = filterInBounds(g.Agents, rows, cols)
	g.Targets = filterInBounds(g.Targets, rows, cols)
	g.Walls = filterInBounds(g.Walls, rows, cols)
}

func filterInBounds(list []Position, rows, cols int) []Position {
	kept := list[:0]
	for _, p := range list {
		if p.Row < rows && p.Col < cols {
			kept = append(kept, p)
		}
	}
	return kept
}

// Clear empties the grid.
func (g *Grid) Clear() {
	g.Cells = makeCells(g.Rows, g.Cols)
	g.Agents = nil
	g.Targets = nil
	g.Walls = nil
}

// PlaceShape stamps a boolean template onto the grid relative to origin.
// Cells falling outside the grid are skipped; overlapping placements
// overwrite.
func (g *Grid) PlaceShape(template [][]bool, origin Position, c Cell) {
	for r, row := range template {
		for col, set := range row {
			if !set {
				continue
			}
			g.SetCell(Position{Row: origin.Row + r, Col: origin.Col + col}, c)
		}
	}
}

// MoveAgent relocates agent idx to pos, keeping the cell array and the
// position lists consistent. A target at the destination is absorbed.
func (g *Grid) MoveAgent(idx int, pos Position) bool {
	if idx < 0 || idx >= len(g.Agents) || !g.InBounds(pos) {
		return false
	}
	if g.Cells[pos.Row][pos.Col] == WallCell {
		return false
	}

	old := g.Agents[idx]
	if old == pos {
		return true
	}

	g.Cells[old.Row][old.Col] = Empty
	if g.Cells[pos.Row][pos.Col] == TargetCell {
		g.Targets = removePosition(g.Targets, pos)
	}
	g.Cells[pos.Row][pos.Col] = AgentCell
	g.Agents[idx] = pos
	return true
}

// RestoreOccupancy replaces the agent and target lists wholesale and
// rewrites their cells, leaving walls untouched. Used to revert a grid to
// its plan-start state.
func (g *Grid) RestoreOccupancy(agents, targets []Position) {
	for _, p := range g.Agents {
		g.Cells[p.Row][p.Col] = Empty
	}
	for _, p := range g.Targets {
		g.Cells[p.Row][p.Col] = Empty
	}
	g.Agents = append([]Position(nil), agents...)
	g.Targets = append([]Position(nil), targets...)
	for _, p := range g.Targets {
		g.Cells[p.Row][p.Col] = TargetCell
	}
	for _, p := range g.Agents {
		g.Cells[p.Row][p.Col] = AgentCell
	}
}

// MoveAgents applies a batch of agent moves at once: all old cells are
// cleared before any new cell is written, so no agent observes another's
// already-updated position mid-step.
func (g *Grid) MoveAgents(moves map[int]Position) {
	for idx, pos := range moves {
		if idx < 0 || idx >= len(g.Agents) || !g.InBounds(pos) {
			delete(moves, idx)
			continue
		}
		old := g.Agents[idx]
		g.Cells[old.Row][old.Col] = Empty
	}
	for idx, pos := range moves {
		if g.Cells[pos.Row][pos.Col] == TargetCell {
			g.Targets = removePosition(g.Targets, pos)
		}
		g.Cells[pos.Row][pos.Col] = AgentCell
		g.Agents[idx] = pos
	}
}
