package astar

import "fmt"

// Point identifies a grid cell. X grows to the right, Y grows downward.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pt is a shorthand constructor for Point.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns the component-wise sum of p and other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Equal reports whether both points name the same cell.
func (p Point) Equal(other Point) bool { return p == other }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Offsets lists the unit moves in expansion order: up, left, down, right.
// Diagonal moves are not used.
var Offsets = [4]Point{
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 1, Y: 0},
}

// Adjacent reports whether a and b differ by exactly one of the Offsets.
func Adjacent(a, b Point) bool {
	for _, offset := range Offsets {
		if a.Add(offset) == b {
			return true
		}
	}
	return false
}
