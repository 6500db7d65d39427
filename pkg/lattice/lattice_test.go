package lattice

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestModEuclid(t *testing.T) {
	tests := []struct {
		name string
		p, m float64
		want float64
	}{
		{"positive", 0.3, 1.0, 0.3},
		{"negative", -0.3, 1.0, 0.7},
		{"zero", 0.0, 1.0, 0.0},
		{"exact period", 2.0, 1.0, 0.0},
		{"negative period multiple", -3.0, 1.5, 0.0},
		{"large negative", -7.25, 1.0, 0.75},
		{"non-unit modulus", -0.5, Sqrt3, Sqrt3 - 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ModEuclid(tt.p, tt.m)
			if !mgl64.FloatEqualThreshold(got, tt.want, 1e-12) {
				t.Errorf("ModEuclid(%v, %v) = %v, want %v", tt.p, tt.m, got, tt.want)
			}
		})
	}
}

func TestModEuclid_Range(t *testing.T) {
	for p := -10.0; p <= 10.0; p += 0.137 {
		for _, m := range []float64{0.25, 1.0, Sqrt3, 5.0} {
			r := ModEuclid(p, m)
			if r < 0 || r >= m {
				t.Fatalf("ModEuclid(%v, %v) = %v, outside [0, %v)", p, m, r, m)
			}
		}
	}
}

func TestHexBoundaryDist_Even(t *testing.T) {
	points := []mgl64.Vec2{
		{0, 0}, {0.3, 0.1}, {-0.2, 0.4}, {0.5, -0.5}, {-0.1, -0.45}, {0.49, 0},
	}
	for _, p := range points {
		d1 := HexBoundaryDist(p)
		d2 := HexBoundaryDist(mgl64.Vec2{-p[0], -p[1]})
		if !mgl64.FloatEqualThreshold(d1, d2, 1e-14) {
			t.Errorf("HexBoundaryDist(%v) = %v but HexBoundaryDist(-p) = %v", p, d1, d2)
		}
	}
}

func TestHexBoundaryDist_Known(t *testing.T) {
	tests := []struct {
		name string
		p    mgl64.Vec2
		want float64
	}{
		{"center", mgl64.Vec2{0, 0}, 0},
		{"east edge midpoint", mgl64.Vec2{0.5, 0}, 0.5},
		{"northeast edge midpoint", mgl64.Vec2{0.25, Sqrt3 / 4}, 0.5},
		{"halfway east", mgl64.Vec2{0.25, 0}, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HexBoundaryDist(tt.p)
			if !mgl64.FloatEqualThreshold(got, tt.want, 1e-12) {
				t.Errorf("HexBoundaryDist(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestHexCell_CenterRoundTrip(t *testing.T) {
	// Cell centers of both sub-lattices must map to themselves with the
	// maximum interior distance.
	centers := []mgl64.Vec2{
		{0, 0},
		{1, 0},
		{-2, Sqrt3},
		{0.5, Sqrt3 / 2},
		{-1.5, -Sqrt3 / 2},
	}
	for _, c := range centers {
		cell := HexCell(c)
		if !cell.Coords.ApproxEqualThreshold(mgl64.Vec2{0, 0}, 1e-12) {
			t.Errorf("HexCell(%v).Coords = %v, want (0,0)", c, cell.Coords)
		}
		if !cell.Center.ApproxEqualThreshold(c, 1e-12) {
			t.Errorf("HexCell(%v).Center = %v, want %v", c, cell.Center, c)
		}
		if !mgl64.FloatEqualThreshold(cell.EdgeDist, MaxEdgeDist, 1e-12) {
			t.Errorf("HexCell(%v).EdgeDist = %v, want %v", c, cell.EdgeDist, MaxEdgeDist)
		}
	}
}

func TestHexCell_Deterministic(t *testing.T) {
	for x := -3.0; x <= 3.0; x += 0.31 {
		for y := -3.0; y <= 3.0; y += 0.29 {
			uv := mgl64.Vec2{x, y}
			first := HexCell(uv)
			second := HexCell(uv)
			if first != second {
				t.Fatalf("HexCell(%v) not deterministic: %+v vs %+v", uv, first, second)
			}
		}
	}
}

// bruteNearestHexDist returns the distance from uv to the closest hex center
// found by exhaustive search over both sub-lattices.
func bruteNearestHexDist(uv mgl64.Vec2) float64 {
	best := math.Inf(1)
	for i := -4; i <= 4; i++ {
		for j := -4; j <= 4; j++ {
			for _, shift := range []float64{0, 0.5} {
				c := mgl64.Vec2{
					math.Floor(uv[0]) + float64(i) + shift,
					(math.Floor(uv[1]/Sqrt3) + float64(j) + shift) * Sqrt3,
				}
				if d := uv.Sub(c).Len(); d < best {
					best = d
				}
			}
		}
	}
	return best
}

func TestHexCell_NearestCenter(t *testing.T) {
	for x := -2.5; x <= 2.5; x += 0.173 {
		for y := -2.5; y <= 2.5; y += 0.191 {
			uv := mgl64.Vec2{x, y}
			cell := HexCell(uv)
			got := uv.Sub(cell.Center).Len()
			want := bruteNearestHexDist(uv)
			if !mgl64.FloatEqualThreshold(got, want, 1e-9) {
				t.Fatalf("HexCell(%v) chose center %v at distance %v, nearest is %v",
					uv, cell.Center, got, want)
			}
		}
	}
}

func TestHexCell_PeriodInvariance(t *testing.T) {
	points := []mgl64.Vec2{{0.2, 0.3}, {-0.7, 1.1}, {0.49, -0.86}}
	for _, uv := range points {
		base := HexCell(uv)
		shifted := HexCell(uv.Add(mgl64.Vec2{1, Sqrt3}))
		if !base.Coords.ApproxEqualThreshold(shifted.Coords, 1e-12) {
			t.Errorf("coords not period invariant at %v: %v vs %v", uv, base.Coords, shifted.Coords)
		}
		if !mgl64.FloatEqualThreshold(base.EdgeDist, shifted.EdgeDist, 1e-12) {
			t.Errorf("edge dist not period invariant at %v: %v vs %v", uv, base.EdgeDist, shifted.EdgeDist)
		}
		if base.Wedge != shifted.Wedge {
			t.Errorf("wedge not period invariant at %v: %d vs %d", uv, base.Wedge, shifted.Wedge)
		}
	}
}

func TestSquareCell(t *testing.T) {
	tests := []struct {
		name       string
		uv         mgl64.Vec2
		wantCenter mgl64.Vec2
		wantDist   float64
	}{
		{"half-integer center", mgl64.Vec2{0.5, 0.5}, mgl64.Vec2{0.5, 0.5}, 0.5},
		{"integer center", mgl64.Vec2{1, 1}, mgl64.Vec2{1, 1}, 0.5},
		{"near integer", mgl64.Vec2{0.1, -0.1}, mgl64.Vec2{0, 0}, 0.4},
		{"near half-integer", mgl64.Vec2{0.6, 0.4}, mgl64.Vec2{0.5, 0.5}, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := SquareCell(tt.uv)
			if !cell.Center.ApproxEqualThreshold(tt.wantCenter, 1e-12) {
				t.Errorf("SquareCell(%v).Center = %v, want %v", tt.uv, cell.Center, tt.wantCenter)
			}
			if !mgl64.FloatEqualThreshold(cell.EdgeDist, tt.wantDist, 1e-12) {
				t.Errorf("SquareCell(%v).EdgeDist = %v, want %v", tt.uv, cell.EdgeDist, tt.wantDist)
			}
		})
	}
}

func TestWedgeIndex(t *testing.T) {
	tests := []struct {
		name string
		p    mgl64.Vec2
		want int
	}{
		{"east edge", mgl64.Vec2{0.4, 0}, 0},
		{"northeast edge", mgl64.Vec2{0.2, 0.2 * Sqrt3}, 1},
		{"northwest edge", mgl64.Vec2{-0.2, 0.2 * Sqrt3}, 2},
		{"west edge", mgl64.Vec2{-0.4, 0}, 3},
		{"southwest edge", mgl64.Vec2{-0.2, -0.2 * Sqrt3}, 4},
		{"southeast edge", mgl64.Vec2{0.2, -0.2 * Sqrt3}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WedgeIndex(tt.p); got != tt.want {
				t.Errorf("WedgeIndex(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}

	// Point reflection lands in the opposite wedge.
	for _, tt := range tests {
		got := WedgeIndex(mgl64.Vec2{-tt.p[0], -tt.p[1]})
		if got != (tt.want+3)%6 {
			t.Errorf("WedgeIndex(-%v) = %d, want %d", tt.p, got, (tt.want+3)%6)
		}
	}
}

func TestCoverage_Monotone(t *testing.T) {
	const width = 0.05
	samples := []float64{0, width / 2, width, 2 * width}

	prev := -1.0
	for _, d := range samples {
		c := Coverage(d, width)
		if c < 0 || c > 1 {
			t.Fatalf("Coverage(%v, %v) = %v, outside [0,1]", d, width, c)
		}
		if c < prev {
			t.Fatalf("Coverage not monotone: Coverage(%v) = %v < %v", d, c, prev)
		}
		prev = c
	}

	if c := Coverage(0, width); c != 0 {
		t.Errorf("Coverage(0) = %v, want 0", c)
	}
	if c := Coverage(width, width); c != 1 {
		t.Errorf("Coverage(width) = %v, want 1", c)
	}
	if c := Coverage(2*width, width); c != 1 {
		t.Errorf("Coverage(2*width) = %v, want 1", c)
	}
}

func TestSameCell(t *testing.T) {
	cursor := HexCell(mgl64.Vec2{0.1, 0.05})
	pixel := HexCell(mgl64.Vec2{-0.2, 0.1})
	if !SameCell(cursor.Center, pixel.Center, 0.1) {
		t.Errorf("points in the same hex should share a center: %v vs %v", cursor.Center, pixel.Center)
	}

	// Same relative offset one full lattice period away is a different cell.
	far := HexCell(mgl64.Vec2{0.1 + 1, 0.05 + Sqrt3})
	if SameCell(cursor.Center, far.Center, 0.1) {
		t.Errorf("cells one period apart must not match: %v vs %v", cursor.Center, far.Center)
	}
}
