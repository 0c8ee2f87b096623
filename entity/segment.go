package entity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// MaxPoints caps the number of samples in a single segment.
const MaxPoints = 1 << 24

// PointCount returns floor(segLen*density)+1, the number of samples for a
// straight segment of length segLen at density points per unit inverse length.
// A zero-length segment yields a single sample.
func PointCount(segLen, density float64) (int, error) {
	if !(segLen >= 0) || math.IsInf(segLen, 0) {
		return 0, fmt.Errorf("%w: segment length must be finite and non-negative, got %v", ErrInvalidInput, segLen)
	}
	if !(density >= 0) || math.IsInf(density, 0) {
		return 0, fmt.Errorf("%w: sampling density must be finite and non-negative, got %v", ErrInvalidInput, density)
	}
	samples := math.Floor(segLen * density)
	if !(samples < MaxPoints) {
		return 0, fmt.Errorf("%w: seg_len*nk_density = %v exceeds %d samples", ErrInvalidInput, segLen*density, MaxPoints)
	}
	return int(samples) + 1, nil
}

func checkCount(n int) error {
	if n < 1 || n > MaxPoints {
		return fmt.Errorf("%w: point count must be in [1, %d], got %d", ErrInvalidInput, MaxPoints, n)
	}
	return nil
}

// Linspace returns n points evenly spaced from p0 to p1, both included.
// For n == 1 the result is just p0. The last point is p1 exactly.
func Linspace(p0, p1 r2.Vec, n int) ([]r2.Vec, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	if n == 1 {
		return []r2.Vec{p0}, nil
	}
	xs := floats.Span(make([]float64, n), p0.X, p1.X)
	ys := floats.Span(make([]float64, n), p0.Y, p1.Y)
	xs[n-1], ys[n-1] = p1.X, p1.Y
	return join(xs, ys), nil
}

// LinspaceExclusive returns n points at t = i/n, i = 0..n-1, along p0→p1.
// p1 itself is never part of the result, so the segment can be followed by
// one starting at p1 without a duplicated sample.
func LinspaceExclusive(p0, p1 r2.Vec, n int) ([]r2.Vec, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	xs := floats.Span(make([]float64, n+1), p0.X, p1.X)
	ys := floats.Span(make([]float64, n+1), p0.Y, p1.Y)
	return join(xs[:n], ys[:n]), nil
}

func join(xs, ys []float64) []r2.Vec {
	pts := make([]r2.Vec, len(xs))
	for i := range pts {
		pts[i] = r2.Vec{X: xs[i], Y: ys[i]}
	}
	return pts
}

func split(pts []r2.Vec) (xs, ys []float64) {
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}
