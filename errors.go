package curveray

import "errors"

// Per-ray intersection outcomes of CurveTriangle.Intersect. None of them
// are fatal: callers use them to pick a fallback color or skip the patch.
var (
	// ErrBehindRay is returned when the shell bracket lies behind the ray origin
	// or the ray misses the shell altogether.
	ErrBehindRay = errors.New("curveray: patch shell behind ray")
	// ErrNoIntersections is returned when the root search found no sign change
	// of the radial field within the shell bracket.
	ErrNoIntersections = errors.New("curveray: no surface crossing in shell bracket")
	// ErrCantSubrayBase is returned when the refined crossing projects
	// outside of the base triangle and therefore belongs to a neighboring patch.
	ErrCantSubrayBase = errors.New("curveray: crossing projects outside base triangle")
)

// ErrBadKoef is returned by NewCurveTriangle for curvature exponents that are
// not positive and finite.
var ErrBadKoef = errors.New("curveray: curvature exponent must be positive and finite")
