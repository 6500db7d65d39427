package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"gridviewer/pkg/lattice"
)

func main() {
	fmt.Println("Probing the hex lattice around the origin...")

	points := []mgl64.Vec2{
		{0, 0},
		{0.45, 0},
		{0.55, 0},
		{0.5, lattice.Sqrt3 / 2},
		{-1.2, 0.8},
		{3.7, -2.9},
	}

	fmt.Println("\n=== Hex cells ===")
	for _, uv := range points {
		cell := lattice.HexCell(uv)
		fmt.Printf("  uv=(%6.2f,%6.2f)  center=(%6.2f,%6.2f)  edge=%.3f  wedge=%d\n",
			uv[0], uv[1], cell.Center[0], cell.Center[1], cell.EdgeDist, cell.Wedge)
	}

	fmt.Println("\n=== Square cells ===")
	for _, uv := range points {
		cell := lattice.SquareCell(uv)
		fmt.Printf("  uv=(%6.2f,%6.2f)  center=(%6.2f,%6.2f)  edge=%.3f\n",
			uv[0], uv[1], cell.Center[0], cell.Center[1], cell.EdgeDist)
	}

	// Spot-check the nearest-center selection against brute force over a
	// neighborhood of candidate centers.
	fmt.Println("\n=== Nearest-center check ===")
	mismatches := 0
	samples := 0
	for x := -3.0; x <= 3.0; x += 0.173 {
		for y := -3.0; y <= 3.0; y += 0.191 {
			uv := mgl64.Vec2{x, y}
			cell := lattice.HexCell(uv)
			chosen := uv.Sub(cell.Center).Len()
			if nearest := bruteNearest(uv); chosen > nearest+1e-9 {
				mismatches++
				fmt.Printf("  MISMATCH at %v: chose %.4f, nearest %.4f\n", uv, chosen, nearest)
			}
			samples++
		}
	}
	fmt.Printf("  %d samples, %d mismatches\n", samples, mismatches)

	fmt.Println("\n=== Edge coverage ramp ===")
	for _, d := range []float64{0, 0.01, 0.02, 0.04, 0.08} {
		fmt.Printf("  edge_dist=%.2f  coverage=%.3f\n", d, lattice.Coverage(d, 0.04))
	}
}

// bruteNearest exhaustively searches both hex sub-lattices near uv.
func bruteNearest(uv mgl64.Vec2) float64 {
	best := 1e18
	for i := -4.0; i <= 4.0; i++ {
		for j := -4.0; j <= 4.0; j++ {
			for _, shift := range []float64{0, 0.5} {
				c := mgl64.Vec2{i + shift, (j + shift) * lattice.Sqrt3}
				if d := uv.Sub(c).Len(); d < best {
					best = d
				}
			}
		}
	}
	return best
}
