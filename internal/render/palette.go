// Package render turns classified basin grids and recorded trails into
// PNG and SVG images.
package render

import "github.com/lucasb-eyer/go-colorful"

// classicColors is the traditional three-magnet palette.
var classicColors = []colorful.Color{
	{R: 1, G: 0, B: 0}, // red
	{R: 1, G: 1, B: 0}, // yellow
	{R: 0, G: 0, B: 1}, // blue
}

// TagColor maps a magnet tag to its basin color. Setups of up to three
// magnets use the classic red/yellow/blue palette; larger ones spread
// evenly around the hue circle. Unclassified cells (negative tags) are
// black.
func TagColor(tag, total int) colorful.Color {
	if tag < 0 {
		return colorful.Color{}
	}
	if total <= len(classicColors) && tag < len(classicColors) {
		return classicColors[tag]
	}
	if total < 1 {
		total = 1
	}
	return colorful.Hsv(float64(tag%total)*360/float64(total), 0.85, 0.95)
}
