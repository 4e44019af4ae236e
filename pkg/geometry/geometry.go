package geometry

import (
	"strconv"

	"github.com/waiteperspectives/eml/pkg/errors"
)

// Point is an integer coordinate on the canvas. The zero value is the
// canvas origin.
type Point struct {
	X, Y int
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return "(" + strconv.Itoa(p.X) + ", " + strconv.Itoa(p.Y) + ")"
}

// Vec is a floating point coordinate, produced where the result of a
// computation need not fall on the integer grid.
type Vec struct {
	X, Y float64
}

// Line is the infinite line through A and B.
type Line struct {
	A, B Point
}

func det(a, b [2]float64) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// LineIntersection returns the point where the infinite lines l1 and l2
// cross.
//
// It fails with ErrCodeDegenerateGeometry when the lines are parallel,
// which includes the case where either line has coincident endpoints.
func LineIntersection(l1, l2 Line) (Vec, error) {
	xdiff := [2]float64{float64(l1.A.X - l1.B.X), float64(l2.A.X - l2.B.X)}
	ydiff := [2]float64{float64(l1.A.Y - l1.B.Y), float64(l2.A.Y - l2.B.Y)}

	div := det(xdiff, ydiff)
	if div == 0 {
		return Vec{}, errors.New(errors.ErrCodeDegenerateGeometry,
			"lines %v-%v and %v-%v do not intersect", l1.A, l1.B, l2.A, l2.B)
	}

	d := [2]float64{
		det([2]float64{float64(l1.A.X), float64(l1.A.Y)}, [2]float64{float64(l1.B.X), float64(l1.B.Y)}),
		det([2]float64{float64(l2.A.X), float64(l2.A.Y)}, [2]float64{float64(l2.B.X), float64(l2.B.Y)}),
	}
	return Vec{X: det(d, xdiff) / div, Y: det(d, ydiff) / div}, nil
}
