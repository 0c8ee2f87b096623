package entity

import "errors"

var (
	// ErrInvalidInput is returned for parameters outside their domain,
	// e.g. a non-positive lattice constant or a negative segment length.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDegenerateGeometry is returned when a direction is requested between
	// two coincident points.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)
