package algo

import (
	"testing"

	"github.com/elektrokombinacija/progmat/internal/core"
)

func assertNoDuplicateTargets(t *testing.T, assignment core.Assignment) {
	t.Helper()
	seen := make(map[int]int)
	for i, j := range assignment {
		if j == core.Unassigned {
			continue
		}
		if prev, ok := seen[j]; ok {
			t.Errorf("target %d assigned to agents %d and %d", j, prev, i)
		}
		seen[j] = i
	}
}

func TestAssignEmptyInputs(t *testing.T) {
	agents := []core.Position{{Row: 0, Col: 0}}
	for _, strategy := range []core.Strategy{core.Hungarian, core.GreedyMatch, core.Auction} {
		if a := Assign(strategy, nil, nil); len(a) != 0 {
			t.Errorf("%v: want empty assignment for empty inputs, got %v", strategy, a)
		}
		if a := Assign(strategy, agents, nil); len(a) != 0 {
			t.Errorf("%v: want empty assignment for zero targets, got %v", strategy, a)
		}
	}
}

func TestAssignUniqueTargets(t *testing.T) {
	agents := []core.Position{{Row: 0, Col: 0}, {Row: 0, Col: 5}, {Row: 5, Col: 0}, {Row: 5, Col: 5}, {Row: 3, Col: 3}}
	targets := []core.Position{{Row: 1, Col: 1}, {Row: 1, Col: 4}, {Row: 4, Col: 1}, {Row: 4, Col: 4}}

	for _, strategy := range []core.Strategy{core.Hungarian, core.GreedyMatch, core.Auction} {
		t.Run(strategy.String(), func(t *testing.T) {
			assignment := Assign(strategy, agents, targets)
			if len(assignment) != len(agents) {
				t.Fatalf("assignment length %d, want %d", len(assignment), len(agents))
			}
			assertNoDuplicateTargets(t, assignment)
		})
	}
}

func TestExcessAgentsStayUnassigned(t *testing.T) {
	agents := []core.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}
	targets := []core.Position{{Row: 5, Col: 0}}

	for _, strategy := range []core.Strategy{core.GreedyMatch, core.Auction} {
		assignment := Assign(strategy, agents, targets)
		assigned := 0
		for _, j := range assignment {
			if j != core.Unassigned {
				assigned++
			}
		}
		if assigned != 1 {
			t.Errorf("%v: %d agents assigned, want 1", strategy, assigned)
		}
	}
}

func TestGreedyTakesNearestWithIndexTiebreak(t *testing.T) {
	agents := []core.Position{{Row: 0, Col: 0}}
	// Targets 0 and 1 are equidistant; the lower index wins.
	targets := []core.Position{{Row: 0, Col: 2}, {Row: 2, Col: 0}, {Row: 0, Col: 1}}

	assignment := Assign(core.GreedyMatch, agents, targets)
	if assignment[0] != 2 {
		t.Errorf("agent 0 assigned target %d, want nearest (2)", assignment[0])
	}

	targets = []core.Position{{Row: 0, Col: 2}, {Row: 2, Col: 0}}
	assignment = Assign(core.GreedyMatch, agents, targets)
	if assignment[0] != 0 {
		t.Errorf("tie broken to target %d, want lower index 0", assignment[0])
	}
}

func TestGreedyOrderDependence(t *testing.T) {
	// Agent 0 claims the shared nearest target first, pushing agent 1 to
	// the farther one.
	agents := []core.Position{{Row: 0, Col: 0}, {Row: 0, Col: 2}}
	targets := []core.Position{{Row: 0, Col: 1}, {Row: 0, Col: 9}}

	assignment := Assign(core.GreedyMatch, agents, targets)
	if assignment[0] != 0 || assignment[1] != 1 {
		t.Errorf("assignment = %v, want [0 1]", assignment)
	}
}

func TestHungarianNotWorseThanGreedyOnBijection(t *testing.T) {
	// Bijective, tie-free case. Sanity bound only: the matcher is
	// approximate and no global optimality is asserted.
	agents := []core.Position{{Row: 0, Col: 0}, {Row: 0, Col: 3}}
	targets := []core.Position{{Row: 0, Col: 1}, {Row: 0, Col: 7}}

	hungarian := Assign(core.Hungarian, agents, targets)
	greedy := Assign(core.GreedyMatch, agents, targets)

	hCost := AssignmentCost(hungarian, agents, targets)
	gCost := AssignmentCost(greedy, agents, targets)
	if hCost > gCost {
		t.Errorf("hungarian cost %d > greedy cost %d", hCost, gCost)
	}
	assertNoDuplicateTargets(t, hungarian)
}

func TestHungarianBijection(t *testing.T) {
	// Distinct best matches; the reduction should recover the identity.
	agents := []core.Position{{Row: 0, Col: 0}, {Row: 5, Col: 5}, {Row: 9, Col: 0}}
	targets := []core.Position{{Row: 1, Col: 0}, {Row: 5, Col: 6}, {Row: 9, Col: 1}}

	assignment := Assign(core.Hungarian, agents, targets)
	for i := range agents {
		if assignment[i] != i {
			t.Errorf("agent %d assigned %d, want %d (assignment %v)", i, assignment[i], i, assignment)
		}
	}
}

func TestAuctionPrefersCloserTargets(t *testing.T) {
	agents := []core.Position{{Row: 0, Col: 0}, {Row: 9, Col: 9}}
	targets := []core.Position{{Row: 1, Col: 0}, {Row: 8, Col: 9}}

	assignment := Assign(core.Auction, agents, targets)
	if assignment[0] != 0 || assignment[1] != 1 {
		t.Errorf("assignment = %v, want [0 1]", assignment)
	}
}

func TestAuctionTieBreaksByLowerIndex(t *testing.T) {
	// Two targets at equal distance: the bid keeps the first, so ties
	// resolve toward lower target indexes, same as greedy matching.
	agents := []core.Position{{Row: 0, Col: 2}}
	targets := []core.Position{{Row: 0, Col: 0}, {Row: 0, Col: 4}}

	assignment := Assign(core.Auction, agents, targets)
	if assignment[0] != 0 {
		t.Errorf("assignment = %v, want the lower-index target", assignment)
	}
}

func TestDistributedAssign(t *testing.T) {
	if a := DistributedAssign(nil, []core.Position{{Row: 0, Col: 0}}); len(a) != 0 {
		t.Errorf("want empty assignment, got %v", a)
	}

	agents := []core.Position{{Row: 0, Col: 0}, {Row: 0, Col: 4}}
	targets := []core.Position{{Row: 0, Col: 1}, {Row: 0, Col: 5}}
	assignment := DistributedAssign(agents, targets)
	if assignment[0] != 0 || assignment[1] != 1 {
		t.Errorf("assignment = %v, want [0 1]", assignment)
	}
	assertNoDuplicateTargets(t, assignment)
}

func TestAssignmentCost(t *testing.T) {
	agents := []core.Position{{Row: 0, Col: 0}, {Row: 0, Col: 4}}
	targets := []core.Position{{Row: 0, Col: 1}, {Row: 0, Col: 5}}

	cost := AssignmentCost(core.Assignment{0, 1}, agents, targets)
	if cost != 2 {
		t.Errorf("cost = %d, want 2", cost)
	}
	cost = AssignmentCost(core.Assignment{core.Unassigned, 1}, agents, targets)
	if cost != 1 {
		t.Errorf("cost with unassigned agent = %d, want 1", cost)
	}
}
