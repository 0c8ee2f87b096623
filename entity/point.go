package entity

import "gonum.org/v1/gonum/spatial/r2"

// Point is the serialized form of a named k-space point.
type Point struct {
	KX float64 `json:"kx"`
	KY float64 `json:"ky"`
}

func NewPoint(v r2.Vec) Point {
	return Point{KX: v.X, KY: v.Y}
}
