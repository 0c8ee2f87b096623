package entity

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Segment names a half-open index range [Start, End) of a path.
type Segment struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// ClosedLoop is the band-structure path Γ → K → M0 → Γ.
type ClosedLoop struct {
	KX []float64 `json:"kx"`
	KY []float64 `json:"ky"`

	Gamma Point `json:"Gamma"`
	K     Point `json:"K"`
	M0    Point `json:"M0"`

	Segments    []Segment `json:"segments"`
	Description string    `json:"description"`
}

const loopDescription = "Kpath from origin (Γ) to K point to midpoint (M0) and back to Γ (closed loop)"

// NewClosedLoop samples every leg with nPoints points including both ends.
// Legs are concatenated as-is, so each corner appears twice and leg i
// occupies [i*nPoints, (i+1)*nPoints).
func NewClosedLoop(l *Lattice, nPoints int) (*ClosedLoop, error) {
	if err := checkCount(nPoints); err != nil {
		return nil, err
	}
	legs := []struct {
		name     string
		from, to r2.Vec
	}{
		{"Γ→K", l.Gamma, l.K},
		{"K→M0", l.K, l.M0},
		{"M0→Γ", l.M0, l.Gamma},
	}

	pts := make([]r2.Vec, 0, len(legs)*nPoints)
	segments := make([]Segment, 0, len(legs))
	for _, leg := range legs {
		seg, err := Linspace(leg.from, leg.to, nPoints)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", leg.name, err)
		}
		segments = append(segments, Segment{Name: leg.name, Start: len(pts), End: len(pts) + len(seg)})
		pts = append(pts, seg...)
	}

	loop := &ClosedLoop{
		Gamma:       NewPoint(l.Gamma),
		K:           NewPoint(l.K),
		M0:          NewPoint(l.M0),
		Segments:    segments,
		Description: loopDescription,
	}
	loop.KX, loop.KY = split(pts)
	return loop, nil
}

func (c *ClosedLoop) Len() int {
	return len(c.KX)
}

// CheckPartition reports whether the segments cover [0, Len()) contiguously
// in order.
func (c *ClosedLoop) CheckPartition() error {
	next := 0
	for _, s := range c.Segments {
		if s.Start != next || s.End < s.Start {
			return fmt.Errorf("segment %s [%d, %d) breaks the partition at %d", s.Name, s.Start, s.End, next)
		}
		next = s.End
	}
	if next != c.Len() {
		return fmt.Errorf("segments end at %d, path has %d points", next, c.Len())
	}
	return nil
}
