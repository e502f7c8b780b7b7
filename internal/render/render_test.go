package render

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/magpen/internal/basin"
	"github.com/san-kum/magpen/internal/pendulum"
	"github.com/san-kum/magpen/internal/vec"
	"github.com/san-kum/magpen/internal/viz"
)

func TestTagColor_Classic(t *testing.T) {
	for tag := 0; tag < 3; tag++ {
		if got := TagColor(tag, 3); got != classicColors[tag] {
			t.Errorf("TagColor(%d, 3) = %v, want classic palette entry", tag, got)
		}
	}
	if got := TagColor(-1, 3); got != (colorful.Color{}) {
		t.Errorf("TagColor(-1, 3) = %v, want black", got)
	}
}

func TestTagColor_RingIsDistinct(t *testing.T) {
	const total = 5
	seen := make(map[string]int)
	for tag := 0; tag < total; tag++ {
		hex := TagColor(tag, total).Hex()
		if prev, ok := seen[hex]; ok {
			t.Errorf("tags %d and %d share color %s", prev, tag, hex)
		}
		seen[hex] = tag
	}
}

func TestWritePNG(t *testing.T) {
	// Row-major with y up: row 0 = [0, 1] is the bottom, row 1 = [2, 0]
	// the top.
	res := &basin.Result{W: 2, H: 2, Tags: []int{0, 1, 2, 0}}

	var buf bytes.Buffer
	if err := WritePNG(&buf, res, 3); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("image is %dx%d, want 2x2", b.Dx(), b.Dy())
	}

	checks := []struct {
		px, py int
		tag    int
	}{
		{0, 0, 2}, // top-left = grid cell (0, 1)
		{1, 0, 0},
		{0, 1, 0}, // bottom-left = grid cell (0, 0)
		{1, 1, 1},
	}
	for _, c := range checks {
		want := color.RGBAModel.Convert(TagColor(c.tag, 3)).(color.RGBA)
		got := color.RGBAModel.Convert(img.At(c.px, c.py)).(color.RGBA)
		if got != want {
			t.Errorf("pixel (%d, %d) = %v, want %v (tag %d)", c.px, c.py, got, want, c.tag)
		}
	}
}

func TestTrailSVG(t *testing.T) {
	points := []vec.Vec2{{X: 0, Y: 0}, {X: 0.01, Y: 0}, {X: 0.02, Y: 0.01}}
	magnets := pendulum.Ring(3, 0.04, 0.04, 30)

	svg := TrailSVG(points, magnets, 400, 400, "#00ffff")

	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "<path") {
		t.Fatal("output is missing svg or path element")
	}
	if n := strings.Count(svg, "<circle"); n != 3 {
		t.Errorf("expected 3 magnet circles, found %d", n)
	}
	if !strings.Contains(svg, " L") {
		t.Error("path has no line segments")
	}

	if got := TrailSVG(points[:1], magnets, 400, 400, "#00ffff"); got != "" {
		t.Error("expected empty output for a single point")
	}
}

func TestCanvasToSVG(t *testing.T) {
	canvas := viz.NewCanvas(4, 4, vec.Vec2{}, 1)
	canvas.Mark(vec.Vec2{})

	svg := CanvasToSVG(canvas, 2)
	if n := strings.Count(svg, "<circle"); n != 1 {
		t.Errorf("expected 1 dot circle, found %d", n)
	}

	if got := CanvasToSVG(nil, 2); got != "" {
		t.Error("expected empty output for nil canvas")
	}
}
