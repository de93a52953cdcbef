package maze

import (
	"math/rand"
	"time"

	"github.com/mvasko/wraith/model"
)

// Smallest usable maze. Requested dimensions below this are raised to it,
// and even dimensions are rounded down to odd so the room lattice lines up.
const minDimension = 5

type carveCandidate struct {
	from   model.Position // open cell the carve grows from
	dr, dc int            // unit direction toward the candidate room
}

// Generate carves a maze with randomized Prim growth from (1,1). Rooms sit
// on odd indices, carving jumps two cells at a time, so the open cells form
// a spanning tree: every room is reachable and no corridor loops exist.
// Pass a nil rng for a time-seeded one; a fixed seed reproduces the maze.
func Generate(rows, cols int, rng *rand.Rand) *Grid {
	rows = ensureOdd(rows)
	cols = ensureOdd(cols)

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	walls := make([][]bool, rows)
	for r := range walls {
		walls[r] = make([]bool, cols)
		for c := range walls[r] {
			walls[r][c] = true
		}
	}

	dirs := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	start := model.Position{Row: 1, Col: 1}
	walls[start.Row][start.Col] = false

	frontier := make([]carveCandidate, 0, 4)
	grow := func(from model.Position) {
		for _, d := range dirs {
			nr, nc := from.Row+2*d[0], from.Col+2*d[1]
			if nr > 0 && nr < rows-1 && nc > 0 && nc < cols-1 {
				frontier = append(frontier, carveCandidate{from: from, dr: d[0], dc: d[1]})
			}
		}
	}
	grow(start)

	for len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		cand := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		room := model.Position{Row: cand.from.Row + 2*cand.dr, Col: cand.from.Col + 2*cand.dc}
		if !walls[room.Row][room.Col] {
			continue
		}
		// open the bridge and the room behind it
		walls[cand.from.Row+cand.dr][cand.from.Col+cand.dc] = false
		walls[room.Row][room.Col] = false
		grow(room)
	}

	// NewGrid seals the border again; carving must not have reached it
	return NewGrid(walls)
}

func ensureOdd(n int) int {
	if n < minDimension {
		return minDimension
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
