package render

import (
	"image"
	"image/png"
	"io"

	"github.com/san-kum/magpen/internal/basin"
)

// WritePNG encodes a classified grid as a PNG, one pixel per cell.
// Grid rows grow with world y, image rows grow downward, so row zero
// of the image shows the grid's highest row.
func WritePNG(w io.Writer, res *basin.Result, total int) error {
	img := image.NewRGBA(image.Rect(0, 0, res.W, res.H))
	for y := 0; y < res.H; y++ {
		for x := 0; x < res.W; x++ {
			img.Set(x, res.H-1-y, TagColor(res.At(x, y), total))
		}
	}
	return png.Encode(w, img)
}
