package analysis

import "github.com/san-kum/magpen/internal/basin"

// Shares returns the fraction of cells each magnet tag won.
func Shares(res *basin.Result) map[int]float64 {
	shares := make(map[int]float64)
	total := float64(len(res.Tags))
	if total == 0 {
		return shares
	}
	for tag, n := range res.Counts() {
		shares[tag] = float64(n) / total
	}
	return shares
}

// BoundaryFraction is the share of cells with at least one 4-neighbor
// of a different tag. Smooth basins sit near zero; fractal mixing
// pushes it toward one.
func BoundaryFraction(res *basin.Result) float64 {
	if res.W == 0 || res.H == 0 {
		return 0
	}

	boundary := 0
	for y := 0; y < res.H; y++ {
		for x := 0; x < res.W; x++ {
			tag := res.At(x, y)
			if x > 0 && res.At(x-1, y) != tag ||
				x < res.W-1 && res.At(x+1, y) != tag ||
				y > 0 && res.At(x, y-1) != tag ||
				y < res.H-1 && res.At(x, y+1) != tag {
				boundary++
			}
		}
	}

	return float64(boundary) / float64(res.W*res.H)
}
