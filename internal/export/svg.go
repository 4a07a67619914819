package export

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/drawstorm/internal/scene"
)

// RenderSVG renders elements as a standalone SVG document using the
// color scheme of exportState.
func RenderSVG(elements []*scene.Element, exportState scene.AppState, padding int) string {
	t := newTheme(exportState)
	b := sceneBounds(elements)
	pad := float64(padding)
	width := math.Ceil(b.width() + 2*pad)
	height := math.Ceil(b.height() + 2*pad)
	dx, dy := pad-b.minX, pad-b.minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="0 0 %s %s" width="%s" height="%s">`,
		num(width), num(height), num(width), num(height))
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`, num(width), num(height), t.background.Hex())
	sb.WriteByte('\n')

	for _, e := range elements {
		writeSVGElement(&sb, e, t, dx, dy)
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeSVGElement(sb *strings.Builder, e *scene.Element, t theme, dx, dy float64) {
	x, y := e.X+dx, e.Y+dy
	stroke := t.stroke(e).Hex()
	fill := "none"
	if c, ok := t.fill(e); ok {
		fill = c.Hex()
	}

	switch e.Type {
	case scene.TypeRectangle, scene.TypeImage:
		fmt.Fprintf(sb, `  <rect x="%s" y="%s" width="%s" height="%s" stroke="%s" fill="%s"/>`,
			num(x), num(y), num(e.Width), num(e.Height), stroke, fill)
	case scene.TypeEllipse:
		fmt.Fprintf(sb, `  <ellipse cx="%s" cy="%s" rx="%s" ry="%s" stroke="%s" fill="%s"/>`,
			num(x+e.Width/2), num(y+e.Height/2), num(e.Width/2), num(e.Height/2), stroke, fill)
	case scene.TypeDiamond:
		fmt.Fprintf(sb, `  <polygon points="%s,%s %s,%s %s,%s %s,%s" stroke="%s" fill="%s"/>`,
			num(x+e.Width/2), num(y), num(x+e.Width), num(y+e.Height/2),
			num(x+e.Width/2), num(y+e.Height), num(x), num(y+e.Height/2), stroke, fill)
	case scene.TypeLine, scene.TypeArrow, scene.TypeFreedraw:
		fmt.Fprintf(sb, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`,
			num(x), num(y), num(x+e.Width), num(y+e.Height), stroke)
	case scene.TypeText:
		size := e.FontSize
		if size == 0 {
			size = 20
		}
		fmt.Fprintf(sb, `  <text x="%s" y="%s" font-family="monospace" font-size="%s" fill="%s">`,
			num(x), num(y+size), num(size), stroke)
		for i, line := range splitLines(e.Text) {
			shift := "0"
			if i > 0 {
				shift = num(size * 1.25)
			}
			fmt.Fprintf(sb, `<tspan x="%s" dy="%s">%s</tspan>`, num(x), shift, html.EscapeString(line))
		}
		sb.WriteString("</text>")
	default:
		return
	}
	sb.WriteByte('\n')
}

// num formats a coordinate without trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
