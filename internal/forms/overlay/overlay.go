// Package overlay synthesizes the per-page visual content depicting form
// fields: one raw content-stream buffer per page, index-aligned with the
// document's page list, ready to be composited on top of the existing page
// content by the merge step.
package overlay

import (
	"bytes"

	"github.com/formfold/mcp-pdf-forms/internal/forms/diag"
	"github.com/formfold/mcp-pdf-forms/internal/forms/fields"
)

// Buffer holds one raw content-stream fragment per document page. Pages with
// nothing to paint stay empty.
type Buffer [][]byte

// Render paints a single field spec. It is the batch case of size one.
func Render(spec fields.WidgetSpec, pageCount int) (Buffer, error) {
	return RenderBatch([]fields.WidgetSpec{spec}, pageCount)
}

// RenderBatch paints all specs grouped by target page, building each page's
// stream in one pass. The output is byte-equivalent to painting every spec
// individually and concatenating the drawing operators per page, but the
// stream-construction work is proportional to the number of fields rather
// than fields times pages.
func RenderBatch(specs []fields.WidgetSpec, pageCount int) (Buffer, error) {
	out := make(Buffer, pageCount)

	// Validate up front so a bad spec cannot leave a half-painted buffer.
	for i := range specs {
		if p := specs[i].PageNumber; p < 1 || p > pageCount {
			return nil, &diag.PageRangeError{Page: p, PageCount: pageCount}
		}
	}

	streams := make(map[int]*bytes.Buffer)
	for i := range specs {
		spec := &specs[i]
		b := streams[spec.PageNumber]
		if b == nil {
			b = &bytes.Buffer{}
			streams[spec.PageNumber] = b
		}
		paint(b, spec)
	}

	for page, b := range streams {
		out[page-1] = b.Bytes()
	}
	return out, nil
}

// paint draws one spec's appearance. All placements of a radio group land in
// the same page stream.
func paint(b *bytes.Buffer, spec *fields.WidgetSpec) {
	border := spec.BorderColor
	if border == nil {
		border = &fields.Color{}
	}
	width := spec.BorderWidth
	if width == 0 {
		width = 1
	}

	for _, r := range spec.Rects() {
		writeRect(b, r, spec.BackgroundColor, border, width)

		switch spec.Kind {
		case fields.KindCheckbox, fields.KindRadio:
			// Slightly inset second outline to set toggles apart from
			// text boxes.
			inset := r.Width * 0.15
			inner := fields.Rect{
				X:      r.X + inset,
				Y:      r.Y + inset,
				Width:  r.Width - 2*inset,
				Height: r.Height - 2*inset,
			}
			writeRect(b, inner, nil, border, width/2)

		case fields.KindDropdown:
			// Arrow marker at the right edge.
			cx := r.X + r.Width - r.Height/2
			cy := r.Y + r.Height/2
			writeLine(b, cx-3, cy+2, cx, cy-2, *border, width)
			writeLine(b, cx, cy-2, cx+3, cy+2, *border, width)

		case fields.KindSignature:
			writeLine(b, r.X+2, r.Y+2, r.X+r.Width-2, r.Y+2, *border, width)

		case fields.KindText, fields.KindListbox, fields.KindImage:
			// Frame only.
		}
	}
}
