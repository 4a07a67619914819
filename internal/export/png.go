package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/drawstorm/internal/scene"
)

// RenderPNG rasterizes elements with the color scheme of exportState and
// returns the encoded PNG.
func RenderPNG(elements []*scene.Element, exportState scene.AppState, padding int) ([]byte, error) {
	img := rasterize(elements, newTheme(exportState), padding)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func rasterize(elements []*scene.Element, t theme, padding int) *image.RGBA {
	b := sceneBounds(elements)
	pad := float64(padding)
	w := int(math.Ceil(b.width() + 2*pad))
	h := int(math.Ceil(b.height() + 2*pad))
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: rgba(t.background)}, image.Point{}, draw.Src)

	dx, dy := pad-b.minX, pad-b.minY
	for _, e := range elements {
		drawElement(img, e, t, dx, dy)
	}
	return img
}

func drawElement(img *image.RGBA, e *scene.Element, t theme, dx, dy float64) {
	x, y := e.X+dx, e.Y+dy
	stroke := rgba(t.stroke(e))

	switch e.Type {
	case scene.TypeRectangle, scene.TypeImage:
		if c, ok := t.fill(e); ok {
			r := image.Rect(int(x), int(y), int(x+e.Width), int(y+e.Height))
			draw.Draw(img, r, &image.Uniform{C: rgba(c)}, image.Point{}, draw.Src)
		}
		polyline(img, stroke, x, y, x+e.Width, y, x+e.Width, y+e.Height, x, y+e.Height, x, y)
	case scene.TypeDiamond:
		cx, cy := x+e.Width/2, y+e.Height/2
		polyline(img, stroke, cx, y, x+e.Width, cy, cx, y+e.Height, x, cy, cx, y)
	case scene.TypeEllipse:
		cx, cy := x+e.Width/2, y+e.Height/2
		rx, ry := e.Width/2, e.Height/2
		steps := max(int(math.Max(rx, ry)*4), 16)
		for i := range steps {
			a0 := 2 * math.Pi * float64(i) / float64(steps)
			a1 := 2 * math.Pi * float64(i+1) / float64(steps)
			line(img, stroke, cx+rx*math.Cos(a0), cy+ry*math.Sin(a0), cx+rx*math.Cos(a1), cy+ry*math.Sin(a1))
		}
	case scene.TypeLine, scene.TypeArrow, scene.TypeFreedraw:
		line(img, stroke, x, y, x+e.Width, y+e.Height)
	case scene.TypeText:
		d := &font.Drawer{
			Dst:  img,
			Src:  &image.Uniform{C: stroke},
			Face: basicfont.Face7x13,
		}
		lineHeight := basicfont.Face7x13.Metrics().Height
		baseline := fixed.I(int(y)) + basicfont.Face7x13.Metrics().Ascent
		for _, text := range splitLines(e.Text) {
			d.Dot = fixed.Point26_6{X: fixed.I(int(x)), Y: baseline}
			d.DrawString(text)
			baseline += lineHeight
		}
	}
}

func polyline(img *image.RGBA, c color.RGBA, pts ...float64) {
	for i := 0; i+3 < len(pts); i += 2 {
		line(img, c, pts[i], pts[i+1], pts[i+2], pts[i+3])
	}
}

// line draws a one pixel segment by sampling along its longer axis.
func line(img *image.RGBA, c color.RGBA, x0, y0, x1, y1 float64) {
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0)))
	if steps == 0 {
		img.SetRGBA(int(x0), int(y0), c)
		return
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		img.SetRGBA(int(math.Round(x0+(x1-x0)*f)), int(math.Round(y0+(y1-y0)*f)), c)
	}
}
