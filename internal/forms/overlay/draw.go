package overlay

import (
	"bytes"
	"fmt"

	"github.com/formfold/mcp-pdf-forms/internal/forms/fields"
)

// Low-level content-stream encoding. Each helper emits a self-contained
// q..Q block so painted shapes cannot leak graphics state into each other.

func writeRect(b *bytes.Buffer, r fields.Rect, fill, stroke *fields.Color, lineWidth float64) {
	if fill == nil && stroke == nil {
		return
	}
	b.WriteString("q\n")
	if fill != nil {
		fmt.Fprintf(b, "%.2f %.2f %.2f rg\n", fill.R, fill.G, fill.B)
	}
	if stroke != nil {
		fmt.Fprintf(b, "%.2f %.2f %.2f RG\n", stroke.R, stroke.G, stroke.B)
		fmt.Fprintf(b, "%.2f w\n", lineWidth)
	}
	fmt.Fprintf(b, "%.2f %.2f %.2f %.2f re\n", r.X, r.Y, r.Width, r.Height)
	switch {
	case fill != nil && stroke != nil:
		b.WriteString("B\n")
	case fill != nil:
		b.WriteString("f\n")
	default:
		b.WriteString("S\n")
	}
	b.WriteString("Q\n")
}

func writeLine(b *bytes.Buffer, x1, y1, x2, y2 float64, stroke fields.Color, lineWidth float64) {
	b.WriteString("q\n")
	fmt.Fprintf(b, "%.2f %.2f %.2f RG\n", stroke.R, stroke.G, stroke.B)
	fmt.Fprintf(b, "%.2f w\n", lineWidth)
	fmt.Fprintf(b, "%.2f %.2f m\n%.2f %.2f l\nS\n", x1, y1, x2, y2)
	b.WriteString("Q\n")
}

