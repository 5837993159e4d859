package core

// Predefined shape templates for target configurations.
var (
	ShapeSquare = [][]bool{
		{true, true, true},
		{true, false, true},
		{true, true, true},
	}
	ShapeDiamond = [][]bool{
		{false, true, false},
		{true, false, true},
		{false, true, false},
	}
	ShapeTriangle = [][]bool{
		{false, true, false},
		{true, true, true},
	}
	ShapeLine = [][]bool{
		{true, true, true, true, true},
	}
)

// Shapes maps template names to templates.
var Shapes = map[string][][]bool{
	"Square":   ShapeSquare,
	"Diamond":  ShapeDiamond,
	"Triangle": ShapeTriangle,
	"Line":     ShapeLine,
}

// CenterOrigin returns the origin that centers a template on the grid.
func (g *Grid) CenterOrigin(template [][]bool) Position {
	if len(template) == 0 {
		return Position{}
	}
	return Position{
		Row: g.Rows/2 - len(template)/2,
		Col: g.Cols/2 - len(template[0])/2,
	}
}
