package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// DefaultLineHeight is used when a [Text] carries no line height.
const DefaultLineHeight = 16

// EscapeXML escapes s for use in SVG text content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// RenderLines writes one <text> element per line of t with the given class.
// Empty blocks write nothing.
func RenderLines(buf *bytes.Buffer, class string, t Text) {
	lh := t.LineHeight
	if lh == 0 {
		lh = DefaultLineHeight
	}
	anchor := t.Anchor
	if anchor == "" {
		anchor = AnchorStart
	}
	for i, line := range t.Lines {
		if line == "" {
			continue
		}
		fmt.Fprintf(buf, `  <text class="%s" x="%.1f" y="%.1f" text-anchor="%s">%s</text>`+"\n",
			class, t.X, t.Y+float64(i)*lh, anchor, EscapeXML(line))
	}
}
