package grid

import (
	"fmt"
	"math"
)

// Depth is the fixed z coordinate of every draw position
const Depth float32 = 0

// Point is a logical cell coordinate, compared by value
type Point struct {
	X int32
	Y int32
}

// P is a convenience constructor for Point
func P(x, y int32) Point {
	return Point{X: x, Y: y}
}

// Vec3 is a continuous draw position handed to the render collaborator
type Vec3 struct {
	X, Y, Z float32
}

// Position converts a cell to its draw position: coordinate * cellSize, z at Depth
func (p Point) Position(cellSize float32) Vec3 {
	return Vec3{
		X: float32(p.X) * cellSize,
		Y: float32(p.Y) * cellSize,
		Z: Depth,
	}
}

// Add offsets the point by (dx, dy)
func (p Point) Add(dx, dy int32) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// PointAt converts a draw position back to the nearest cell
func PointAt(v Vec3, cellSize float32) Point {
	return Point{
		X: int32(math.Round(float64(v.X / cellSize))),
		Y: int32(math.Round(float64(v.Y / cellSize))),
	}
}
