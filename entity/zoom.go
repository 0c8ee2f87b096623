package entity

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// ZoomPath is a two-segment path in q-space centered on K: a horizontal
// segment ending just before K, then a radial segment from K toward Γ.
type ZoomPath struct {
	// relative to K
	QX []float64 `json:"qx"`
	QY []float64 `json:"qy"`
	// absolute
	KX []float64 `json:"kx"`
	KY []float64 `json:"ky"`

	K                Point  `json:"K"`
	RangeDescription string `json:"range_description"`

	HorizontalCount int `json:"-"`
	RadialCount     int `json:"-"`
}

// NewZoomPath samples the horizontal segment (-segLen,0)→(0,0) without its
// endpoint and the radial segment (0,0)→segLen·dir with both endpoints, where
// dir is the unit vector from K toward Γ.
func NewZoomPath(l *Lattice, segLen, density float64) (*ZoomPath, error) {
	toGamma := r2.Sub(l.Gamma, l.K)
	if r2.Norm(toGamma) == 0 {
		return nil, fmt.Errorf("%w: K coincides with Γ, direction K→Γ is undefined", ErrDegenerateGeometry)
	}
	dir := r2.Unit(toGamma)

	n, err := PointCount(segLen, density)
	if err != nil {
		return nil, err
	}

	horiz, err := LinspaceExclusive(r2.Vec{X: -segLen}, r2.Vec{}, n)
	if err != nil {
		return nil, fmt.Errorf("horizontal segment: %w", err)
	}
	radial, err := Linspace(r2.Vec{}, r2.Scale(segLen, dir), n)
	if err != nil {
		return nil, fmt.Errorf("radial segment: %w", err)
	}

	q := make([]r2.Vec, 0, len(horiz)+len(radial))
	q = append(q, horiz...)
	q = append(q, radial...)

	desc := fmt.Sprintf(
		"Two segments of length %g Å⁻¹ in q-space: horizontal (qx: %g→0, qy=0) then radial toward Γ.",
		segLen, -segLen,
	)
	zp := &ZoomPath{
		K:                NewPoint(l.K),
		RangeDescription: desc,
		HorizontalCount:  len(horiz),
		RadialCount:      len(radial),
	}
	zp.QX, zp.QY = split(q)
	zp.KX = make([]float64, len(q))
	zp.KY = make([]float64, len(q))
	for i, p := range q {
		zp.KX[i] = p.X + l.K.X
		zp.KY[i] = p.Y + l.K.Y
	}
	return zp, nil
}

func (z *ZoomPath) Len() int {
	return len(z.QX)
}
