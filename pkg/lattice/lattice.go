package lattice

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sqrt3 is the vertical lattice period of the pointy-top hex tiling.
const Sqrt3 = 1.7320508075688772

// MaxEdgeDist is the edge distance at a cell center, for both tilings.
// EdgeDist runs from 0 on the cell boundary up to this value at the center.
const MaxEdgeDist = 0.5

// hexPeriod is the repeat of each of the two interleaved sub-lattices.
var hexPeriod = mgl64.Vec2{1, Sqrt3}

// hexEdgeNormal is the unit normal of the upper-right hex edge, (0.5, √3/2).
var hexEdgeNormal = mgl64.Vec2{1, Sqrt3}.Normalize()

// Cell identifies the tiling cell containing a plane point.
type Cell struct {
	// Center is the nearest cell center, in lattice units.
	Center mgl64.Vec2

	// Coords is the offset of the query point from Center.
	Coords mgl64.Vec2

	// EdgeDist is the distance field value at the point: 0 on the cell
	// boundary, MaxEdgeDist at the center. Larger means further inside.
	EdgeDist float64

	// Wedge is the 60-degree sector of Coords, 0-5, with sectors centered
	// on the six edge normals. Hex tiling only; SquareCell leaves it 0.
	Wedge int
}

// ModEuclid returns the Euclidean remainder of p modulo m, always in [0, m)
// for m > 0 regardless of the sign of p.
func ModEuclid(p, m float64) float64 {
	r := math.Mod(p, m)
	if r < 0 {
		r += m
	}
	if r == m {
		// r can round up to exactly m for tiny negative p
		r = 0
	}
	return r
}

func modEuclid2(p, m mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{ModEuclid(p[0], m[0]), ModEuclid(p[1], m[1])}
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}

// HexBoundaryDist returns the hexagonal distance field of an offset from a
// cell center: 0 at the center, MaxEdgeDist on the cell boundary.
func HexBoundaryDist(p mgl64.Vec2) float64 {
	q := mgl64.Vec2{math.Abs(p[0]), math.Abs(p[1])}
	return math.Max(q[0], q.Dot(hexEdgeNormal))
}

// HexCell finds the pointy-top hex cell containing uv (lattice units).
// The two candidate centers come from the two interleaved sub-lattices,
// one aligned to multiples of the period and one shifted by half a period;
// the true center is whichever candidate is closer.
func HexCell(uv mgl64.Vec2) Cell {
	half := hexPeriod.Mul(0.5)
	a := modEuclid2(uv, hexPeriod).Sub(half)
	b := modEuclid2(uv.Sub(half), hexPeriod).Sub(half)

	offset := a
	if b.Dot(b) < a.Dot(a) {
		offset = b
	}

	return Cell{
		Center:   uv.Sub(offset),
		Coords:   offset,
		EdgeDist: MaxEdgeDist - HexBoundaryDist(offset),
		Wedge:    WedgeIndex(offset),
	}
}

// SquareCell finds the unit-square cell containing uv. The candidate centers
// live on the half-integer and integer lattices; the distance field is the
// Chebyshev distance to the nearest center.
func SquareCell(uv mgl64.Vec2) Cell {
	a := mgl64.Vec2{fract(uv[0]) - 0.5, fract(uv[1]) - 0.5}
	b := mgl64.Vec2{fract(uv[0]-0.5) - 0.5, fract(uv[1]-0.5) - 0.5}

	offset := a
	if b.Dot(b) < a.Dot(a) {
		offset = b
	}

	cheb := math.Max(math.Abs(offset[0]), math.Abs(offset[1]))
	return Cell{
		Center:   uv.Sub(offset),
		Coords:   offset,
		EdgeDist: MaxEdgeDist - cheb,
	}
}

// WedgeIndex quantizes the polar angle of an offset from a cell center into
// one of six 60-degree sectors. Sector 0 is centered on the +X edge normal,
// so each sector covers exactly one triangular wedge of the hexagon.
func WedgeIndex(p mgl64.Vec2) int {
	ang := math.Atan2(p[1], p[0])
	w := int(math.Floor((ang + math.Pi/6) / (math.Pi / 3)))
	return ((w % 6) + 6) % 6
}

// Smoothstep is the standard cubic smooth threshold between e0 and e1.
func Smoothstep(e0, e1, x float64) float64 {
	t := (x - e0) / (e1 - e0)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// Coverage maps an edge distance to an anti-aliased line coverage value:
// 0 on the cell boundary rising to 1 once the distance reaches width.
func Coverage(edgeDist, width float64) float64 {
	return Smoothstep(0, width, edgeDist)
}

// SameCell reports whether two cell centers coincide within eps. Cursor
// highlighting uses this to match the hovered cell against a pixel's cell.
func SameCell(a, b mgl64.Vec2, eps float64) bool {
	d := a.Sub(b)
	return d.Dot(d) < eps*eps
}
