package core

import "testing"

func TestNeighborsInterior(t *testing.T) {
	g := NewGrid(10, 10)

	got := g.Neighbors(Position{5, 5})
	if len(got) != 4 {
		t.Errorf("VonNeumann interior: expected 4 neighbors, got %d", len(got))
	}

	g.Topology = Moore
	got = g.Neighbors(Position{5, 5})
	if len(got) != 8 {
		t.Errorf("Moore interior: expected 8 neighbors, got %d", len(got))
	}
}

func TestNeighborsEdgesAndWalls(t *testing.T) {
	g := NewGrid(10, 10)

	got := g.Neighbors(Position{0, 0})
	if len(got) != 2 {
		t.Errorf("corner: expected 2 neighbors, got %d", len(got))
	}

	g.SetCell(Position{5, 6}, WallCell)
	got = g.Neighbors(Position{5, 5})
	if len(got) != 3 {
		t.Errorf("next to wall: expected 3 neighbors, got %d", len(got))
	}
	for _, n := range got {
		if !g.InBounds(n) {
			t.Errorf("neighbor %v out of bounds", n)
		}
		if g.Cells[n.Row][n.Col] == WallCell {
			t.Errorf("neighbor %v is a wall", n)
		}
	}
}

func TestNeighborsIncludeAgents(t *testing.T) {
	// Agent/agent collisions are a later pass; neighbors must not filter
	// occupied cells.
	g := NewGrid(10, 10)
	g.SetCell(Position{5, 6}, AgentCell)

	if len(g.Neighbors(Position{5, 5})) != 4 {
		t.Error("neighbor occupied by an agent was excluded")
	}
}

func TestSetCellConsistency(t *testing.T) {
	g := NewGrid(10, 10)
	pos := Position{3, 4}

	g.SetCell(pos, AgentCell)
	if len(g.Agents) != 1 || g.Agents[0] != pos {
		t.Fatalf("agent list = %v, want [%v]", g.Agents, pos)
	}

	// Overwriting moves the position between lists.
	g.SetCell(pos, WallCell)
	if len(g.Agents) != 0 {
		t.Errorf("agent list not emptied: %v", g.Agents)
	}
	if len(g.Walls) != 1 || g.Walls[0] != pos {
		t.Errorf("wall list = %v, want [%v]", g.Walls, pos)
	}

	// Idempotent: setting the same type twice keeps one entry.
	g.SetCell(pos, WallCell)
	if len(g.Walls) != 1 {
		t.Errorf("duplicate wall entry after repeated SetCell: %v", g.Walls)
	}

	g.SetCell(pos, Empty)
	if len(g.Walls) != 0 {
		t.Errorf("wall list not emptied: %v", g.Walls)
	}
	if c, _ := g.CellAt(pos); c != Empty {
		t.Errorf("cell = %v, want Empty", c)
	}
}

func TestSetCellOutOfBounds(t *testing.T) {
	g := NewGrid(10, 10)

	for _, pos := range []Position{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if g.SetCell(pos, WallCell) {
			t.Errorf("SetCell(%v) accepted out-of-bounds position", pos)
		}
	}
	if len(g.Walls) != 0 {
		t.Errorf("out-of-bounds SetCell mutated wall list: %v", g.Walls)
	}
}

func TestResizeRoundTrip(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetCell(Position{2, 3}, AgentCell)
	g.SetCell(Position{7, 8}, TargetCell)
	g.SetCell(Position{5, 5}, WallCell)

	before := make([][]Cell, len(g.Cells))
	for r := range g.Cells {
		before[r] = append([]Cell(nil), g.Cells[r]...)
	}

	g.Resize(10, 10)

	for r := range before {
		for c := range before[r] {
			if g.Cells[r][c] != before[r][c] {
				t.Errorf("cell (%d,%d) changed: %v -> %v", r, c, before[r][c], g.Cells[r][c])
			}
		}
	}
	if len(g.Agents) != 1 || len(g.Targets) != 1 || len(g.Walls) != 1 {
		t.Errorf("lists changed: agents=%v targets=%v walls=%v", g.Agents, g.Targets, g.Walls)
	}
}

func TestResizeDropsStale(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetCell(Position{2, 2}, AgentCell)
	g.SetCell(Position{9, 9}, AgentCell)
	g.SetCell(Position{8, 1}, TargetCell)

	g.Resize(6, 6)

	if g.Rows != 6 || g.Cols != 6 {
		t.Fatalf("dimensions = %dx%d, want 6x6", g.Rows, g.Cols)
	}
	if len(g.Agents) != 1 || g.Agents[0] != (Position{2, 2}) {
		t.Errorf("agents = %v, want [(2,2)]", g.Agents)
	}
	if len(g.Targets) != 0 {
		t.Errorf("stale target survived resize: %v", g.Targets)
	}
}

func TestResizeClampsToBounds(t *testing.T) {
	g := NewGrid(10, 10)
	g.Resize(1, 100)
	if g.Rows != MinSize || g.Cols != MaxSize {
		t.Errorf("dimensions = %dx%d, want %dx%d", g.Rows, g.Cols, MinSize, MaxSize)
	}
}

func TestPlaceShape(t *testing.T) {
	g := NewGrid(10, 10)
	g.PlaceShape(ShapeDiamond, Position{2, 2}, TargetCell)

	if len(g.Targets) != 4 {
		t.Fatalf("diamond placed %d targets, want 4", len(g.Targets))
	}
	if c, _ := g.CellAt(Position{2, 3}); c != TargetCell {
		t.Error("diamond top cell not set")
	}
	if c, _ := g.CellAt(Position{2, 2}); c != Empty {
		t.Error("diamond hole was set")
	}
}

func TestPlaceShapeClipped(t *testing.T) {
	g := NewGrid(5, 5)
	g.PlaceShape(ShapeLine, Position{0, 3}, WallCell) // 5-wide line, 2 cells fit

	if len(g.Walls) != 2 {
		t.Errorf("clipped line placed %d walls, want 2", len(g.Walls))
	}
}

func TestCenterOrigin(t *testing.T) {
	g := NewGrid(10, 10)
	origin := g.CenterOrigin(ShapeSquare)
	if origin != (Position{4, 4}) {
		t.Errorf("origin = %v, want (4,4)", origin)
	}
}

func TestMoveAgentAbsorbsTarget(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetCell(Position{0, 0}, AgentCell)
	g.SetCell(Position{0, 1}, TargetCell)

	if !g.MoveAgent(0, Position{0, 1}) {
		t.Fatal("MoveAgent rejected a legal move")
	}
	if g.Agents[0] != (Position{0, 1}) {
		t.Errorf("agent at %v, want (0,1)", g.Agents[0])
	}
	if len(g.Targets) != 0 {
		t.Errorf("target not absorbed: %v", g.Targets)
	}
	if c, _ := g.CellAt(Position{0, 0}); c != Empty {
		t.Error("old cell not cleared")
	}
}

func TestMoveAgentRejectsWall(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetCell(Position{0, 0}, AgentCell)
	g.SetCell(Position{0, 1}, WallCell)

	if g.MoveAgent(0, Position{0, 1}) {
		t.Error("MoveAgent accepted a wall destination")
	}
	if g.MoveAgent(5, Position{1, 1}) {
		t.Error("MoveAgent accepted a bad agent index")
	}
}

func TestMoveAgentsBatch(t *testing.T) {
	// Two agents shifting in column order; old cells cleared before new
	// cells are written, so a chain move does not erase the tail.
	g := NewGrid(10, 10)
	g.SetCell(Position{0, 0}, AgentCell)
	g.SetCell(Position{0, 1}, AgentCell)

	g.MoveAgents(map[int]Position{
		0: {0, 1},
		1: {0, 2},
	})

	if g.Agents[0] != (Position{0, 1}) || g.Agents[1] != (Position{0, 2}) {
		t.Errorf("agents = %v, want [(0,1) (0,2)]", g.Agents)
	}
	if c, _ := g.CellAt(Position{0, 0}); c != Empty {
		t.Error("vacated cell not cleared")
	}
	if c, _ := g.CellAt(Position{0, 1}); c != AgentCell {
		t.Error("chain move erased the occupied cell")
	}
}

func TestRestoreOccupancy(t *testing.T) {
	g := NewGrid(10, 10)
	g.SetCell(Position{0, 0}, AgentCell)
	g.SetCell(Position{5, 5}, TargetCell)
	g.SetCell(Position{3, 3}, WallCell)

	agents := append([]Position(nil), g.Agents...)
	targets := append([]Position(nil), g.Targets...)

	g.MoveAgent(0, Position{0, 1})
	g.MoveAgent(0, Position{0, 2})
	g.RestoreOccupancy(agents, targets)

	if g.Agents[0] != (Position{0, 0}) {
		t.Errorf("agent at %v, want (0,0)", g.Agents[0])
	}
	if c, _ := g.CellAt(Position{5, 5}); c != TargetCell {
		t.Error("target cell not restored")
	}
	if c, _ := g.CellAt(Position{3, 3}); c != WallCell {
		t.Error("wall disturbed by restore")
	}
	if c, _ := g.CellAt(Position{0, 2}); c != Empty {
		t.Error("moved-to cell not cleared by restore")
	}
}

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{2, 2}, 4},
		{Position{5, 1}, Position{1, 5}, 8},
	}
	for _, tt := range tests {
		if got := ManhattanDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("ManhattanDistance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
