package render

import (
	"fmt"
	"strings"
)

var palette = []string{"#4285f4", "#34a853", "#fbbc05", "#ea4335", "#8e44ad", "#16a085"}

// SVG draws boxes as rectangles, one colour per column. The canvas is
// sized to fit every box.
func SVG(boxes []Box) string {
	var width, height float64
	for _, b := range boxes {
		width = max(width, b.Left+b.Width)
		height = max(height, b.Top+b.Height)
	}

	var svg strings.Builder
	fmt.Fprintf(&svg, `<svg width="%s" height="%s" xmlns="http://www.w3.org/2000/svg">`+"\n", trimFloat(width), trimFloat(height))
	for _, b := range boxes {
		fmt.Fprintf(&svg, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s" fill-opacity="0.6" stroke="#333333" stroke-width="1"/>`+"\n",
			trimFloat(b.Left), trimFloat(b.Top), trimFloat(b.Width), trimFloat(b.Height), palette[b.ColumnIndex%len(palette)])

		text := b.Label
		if text == "" {
			text = b.ID
		}
		fmt.Fprintf(&svg, `<text x="%s" y="%s" font-family="Arial, sans-serif" font-size="12">%s</text>`+"\n",
			trimFloat(b.Left+4), trimFloat(b.Top+14), escapeXML(text))
	}
	svg.WriteString("</svg>\n")
	return svg.String()
}

func escapeXML(s string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	).Replace(s)
}
