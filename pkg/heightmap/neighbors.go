package heightmap

// Neighbor offsets in (row, col) units of the half step.
var (
	diagonalOffsets   = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	orthogonalOffsets = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
)

// accumulator collects the in-bounds neighbors of a cell.
type accumulator struct {
	sum   float32
	count int
}

// gather sums the neighbors of (row, col) at distance dist along offsets,
// skipping any that fall outside the grid.
func gather(g *Grid, row, col, dist int, offsets *[4][2]int) accumulator {
	var acc accumulator
	for _, o := range offsets {
		r, c := row+o[0]*dist, col+o[1]*dist
		if !g.inBounds(r, c) {
			continue
		}
		acc.sum += g.at(r, c)
		acc.count++
	}
	return acc
}

// mean returns the average of the collected values, or 0 if none were found.
func (a accumulator) mean() float32 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float32(a.count)
}
