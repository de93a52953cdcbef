package maze

import "github.com/mvasko/wraith/model"

// ShortestPath walks a breadth-first search from `from` and returns the
// cells of a shortest open route, excluding `from` and including `to`.
// Nil when either endpoint is closed or no route exists. Ties between
// equal-length routes fall to direction enumeration order; callers must
// not rely on which one wins.
func ShortestPath(g *Grid, from, to model.Position) []model.Position {
	if !g.IsOpenPos(from) || !g.IsOpenPos(to) {
		return nil
	}
	if from == to {
		return nil
	}

	queue := []model.Position{from}
	cameFrom := make(map[model.Position]model.Position)
	visited := map[model.Position]bool{from: true}

	dirs := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == to {
			// walk predecessors back to from, then flip
			path := make([]model.Position, 0)
			for curr != from {
				path = append(path, curr)
				curr = cameFrom[curr]
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range dirs {
			next := model.Position{Row: curr.Row + d[0], Col: curr.Col + d[1]}
			if g.IsOpenPos(next) && !visited[next] {
				visited[next] = true
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
	return nil
}
