package wordcloud

import (
	"fmt"
	"html"
	"strings"
)

// SVG renders the layout on a white background.
func (l Layout) SVG() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`,
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="#ffffff"/>`)
	for _, w := range l.Words {
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-family="Arial" font-size="%.1f" fill="%s">%s</text>`,
			w.X, w.Y, w.FontSize, w.Color, html.EscapeString(w.Token))
	}
	b.WriteString("</svg>")
	return b.String()
}
