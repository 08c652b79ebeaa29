package grid

// Direction is one of the four axis-aligned headings
// Up increases Y (world coordinates, not screen coordinates)
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every heading in input priority order
var Directions = [4]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset of one step in this direction
func (d Direction) Delta() (dx, dy int32) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		panic("grid: invalid direction")
	}
}

// Opposite returns the reverse heading
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		panic("grid: invalid direction")
	}
}

// Next returns the neighbouring cell in direction d
// No wraparound: positions past the playfield are produced on purpose so the
// collision check can see wall strikes
func Next(p Point, d Direction) Point {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}
