package maze

import "github.com/mvasko/wraith/model"

// Grid is the occupancy map of one round. It is fixed once constructed;
// the outer border is always wall.
type Grid struct {
	rows, cols int
	walls      [][]bool // true = wall
}

// NewGrid copies the given layout and forces the border closed.
func NewGrid(walls [][]bool) *Grid {
	rows := len(walls)
	cols := 0
	if rows > 0 {
		cols = len(walls[0])
	}
	w := make([][]bool, rows)
	for r := range walls {
		w[r] = make([]bool, cols)
		copy(w[r], walls[r])
	}
	g := &Grid{rows: rows, cols: cols, walls: w}
	g.sealBorder()
	return g
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// IsOpen reports whether the cell is inside the grid and passable.
// Out-of-bounds queries answer false so neighbor scans need no bounds
// arithmetic of their own.
func (g *Grid) IsOpen(row, col int) bool {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return false
	}
	return !g.walls[row][col]
}

func (g *Grid) IsOpenPos(p model.Position) bool {
	return g.IsOpen(p.Row, p.Col)
}

// OpenCells lists every passable cell, row-major.
func (g *Grid) OpenCells() []model.Position {
	open := make([]model.Position, 0, g.rows*g.cols/2)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if !g.walls[r][c] {
				open = append(open, model.Position{Row: r, Col: c})
			}
		}
	}
	return open
}

// Walls returns a copy of the layout for the renderer setup frame.
func (g *Grid) Walls() [][]bool {
	w := make([][]bool, g.rows)
	for r := range g.walls {
		w[r] = make([]bool, g.cols)
		copy(w[r], g.walls[r])
	}
	return w
}

func (g *Grid) sealBorder() {
	if g.rows == 0 || g.cols == 0 {
		return
	}
	for c := 0; c < g.cols; c++ {
		g.walls[0][c] = true
		g.walls[g.rows-1][c] = true
	}
	for r := 0; r < g.rows; r++ {
		g.walls[r][0] = true
		g.walls[r][g.cols-1] = true
	}
}
