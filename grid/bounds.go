package grid

// Bounds is the half-extent of the playfield in cells
// Legal cells are [-X, X] × [-Y, Y]
type Bounds struct {
	X int32
	Y int32
}

// BoundsFor derives bounds from a playfield size and cell size in draw units
// The window is expected to be one cell larger than the playfield so that the
// outermost cells keep a half-cell margin
func BoundsFor(width, height, cellSize float32) Bounds {
	return Bounds{
		X: int32(width / 2 / cellSize),
		Y: int32(height / 2 / cellSize),
	}
}

// Contains reports whether p is a legal cell
func (b Bounds) Contains(p Point) bool {
	return p.X >= -b.X && p.X <= b.X && p.Y >= -b.Y && p.Y <= b.Y
}

// Columns is the number of legal columns
func (b Bounds) Columns() int {
	return int(2*b.X + 1)
}

// Rows is the number of legal rows
func (b Bounds) Rows() int {
	return int(2*b.Y + 1)
}

// Cells is the number of legal cells
func (b Bounds) Cells() int {
	return b.Columns() * b.Rows()
}

// Each visits every legal cell row by row, bottom to top, stopping when fn returns false
func (b Bounds) Each(fn func(Point) bool) {
	for y := -b.Y; y <= b.Y; y++ {
		for x := -b.X; x <= b.X; x++ {
			if !fn(Point{X: x, Y: y}) {
				return
			}
		}
	}
}
