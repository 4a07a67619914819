package export

import (
	"math"

	"github.com/rivo/uniseg"

	"github.com/dshills/drawstorm/internal/scene"
)

// glyphRatio approximates a monospace glyph width relative to font size.
const glyphRatio = 0.6

type rect struct {
	minX, minY, maxX, maxY float64
}

func (r rect) width() float64  { return r.maxX - r.minX }
func (r rect) height() float64 { return r.maxY - r.minY }

// elementBounds returns the box covered by e. Lines and arrows may have
// negative width or height.
func elementBounds(e *scene.Element) rect {
	w, h := e.Width, e.Height
	if scene.IsTextElement(e) && (w == 0 || h == 0) {
		w, h = textExtent(e)
	}
	return rect{
		minX: math.Min(e.X, e.X+w),
		minY: math.Min(e.Y, e.Y+h),
		maxX: math.Max(e.X, e.X+w),
		maxY: math.Max(e.Y, e.Y+h),
	}
}

// sceneBounds returns the union of the element boxes.
func sceneBounds(elements []*scene.Element) rect {
	b := rect{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
	for _, e := range elements {
		eb := elementBounds(e)
		b.minX = math.Min(b.minX, eb.minX)
		b.minY = math.Min(b.minY, eb.minY)
		b.maxX = math.Max(b.maxX, eb.maxX)
		b.maxY = math.Max(b.maxY, eb.maxY)
	}
	return b
}

// textExtent estimates the rendered size of a text element from its
// widest line, counted in terminal cells.
func textExtent(e *scene.Element) (float64, float64) {
	size := e.FontSize
	if size == 0 {
		size = 20
	}
	lines := splitLines(e.Text)
	widest := 0
	for _, line := range lines {
		widest = max(widest, uniseg.StringWidth(line))
	}
	return float64(widest) * size * glyphRatio, float64(len(lines)) * size * 1.25
}

func splitLines(text string) []string {
	var lines []string
	start := 0
	for i, r := range text {
		if r == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	return append(lines, text[start:])
}
