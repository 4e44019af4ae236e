// Package geometry provides the integer point type used for node origins
// and anchors, and the line intersection used to place curve control points.
//
// Intersections are computed for infinite lines, never for bounded
// segments:
//
//	vertical := geometry.Line{A: geometry.Point{X: 750, Y: 600}, B: geometry.Point{X: 750, Y: 99999}}
//	horizontal := geometry.Line{A: geometry.Point{X: 450, Y: 225}, B: geometry.Point{X: 0, Y: 225}}
//	x, y, err := geometry.LineIntersection(vertical, horizontal) // 750, 225
package geometry
