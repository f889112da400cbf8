package template

import (
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/formfold/mcp-pdf-forms/internal/forms/fields"
)

// Path is one candidate lookup path through nested dictionaries, e.g.
// {"Parent", "MaxLen"}. Every hop is dereferenced, and any failure (missing
// key, dangling reference, wrong type) disqualifies only this candidate.
type Path []string

// lookup walks a single path. Third-party producers routinely leave dangling
// references behind, so a failed dereference is reported as a plain miss:
// the caller moves on to the next candidate path, and a corrupt reference in
// one attribute can never block extraction of a different attribute.
func lookup(ctx *model.Context, d types.Dict, path Path) (types.Object, bool) {
	cur := d
	for i, key := range path {
		raw, found := cur.Find(key)
		if !found {
			return nil, false
		}
		obj, err := ctx.Dereference(raw)
		if err != nil || obj == nil {
			return nil, false
		}
		if i == len(path)-1 {
			return obj, true
		}
		next, ok := obj.(types.Dict)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// extractText tries each path left to right and returns the first value that
// resolves and decodes as a string. Never fails; returns def instead.
func extractText(ctx *model.Context, d types.Dict, paths []Path, def string) string {
	for _, p := range paths {
		obj, ok := lookup(ctx, d, p)
		if !ok {
			continue
		}
		if s, err := ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil); err == nil {
			return s
		}
	}
	return def
}

// extractName returns the first candidate that resolves to a name object.
func extractName(ctx *model.Context, d types.Dict, paths []Path, def string) string {
	for _, p := range paths {
		obj, ok := lookup(ctx, d, p)
		if !ok {
			continue
		}
		if n, ok := obj.(types.Name); ok {
			return n.Value()
		}
	}
	return def
}

// extractInt returns the first candidate that resolves to an integer.
func extractInt(ctx *model.Context, d types.Dict, paths []Path) (int, bool) {
	for _, p := range paths {
		obj, ok := lookup(ctx, d, p)
		if !ok {
			continue
		}
		if i, ok := obj.(types.Integer); ok {
			return int(i), true
		}
	}
	return 0, false
}

// extractRect reads the annotation rectangle, normalized to positive
// width/height.
func extractRect(ctx *model.Context, d types.Dict, paths []Path) (fields.Rect, bool) {
	for _, p := range paths {
		obj, ok := lookup(ctx, d, p)
		if !ok {
			continue
		}
		arr, ok := obj.(types.Array)
		if !ok || len(arr) != 4 {
			continue
		}
		coords := make([]float64, 4)
		valid := true
		for i, c := range arr {
			f, err := ctx.DereferenceNumber(c)
			if err != nil {
				valid = false
				break
			}
			coords[i] = f
		}
		if !valid {
			continue
		}
		llx, lly, urx, ury := coords[0], coords[1], coords[2], coords[3]
		if urx < llx {
			llx, urx = urx, llx
		}
		if ury < lly {
			lly, ury = ury, lly
		}
		return fields.Rect{X: llx, Y: lly, Width: urx - llx, Height: ury - lly}, true
	}
	return fields.Rect{}, false
}

// extractOptions reads a choice field's option array. Entries are either
// plain strings or [export, display] pairs; the display value wins. The
// second return reports whether an option array was found at all, so the
// missing-choices case can be diagnosed without skipping the field.
func extractOptions(ctx *model.Context, d types.Dict, paths []Path) ([]string, bool) {
	for _, p := range paths {
		obj, ok := lookup(ctx, d, p)
		if !ok {
			continue
		}
		arr, ok := obj.(types.Array)
		if !ok {
			continue
		}
		options := make([]string, 0, len(arr))
		for _, opt := range arr {
			if s, err := ctx.DereferenceStringOrHexLiteral(opt, model.V10, nil); err == nil {
				options = append(options, s)
				continue
			}
			pair, err := ctx.DereferenceArray(opt)
			if err != nil || len(pair) < 2 {
				continue
			}
			if s, err := ctx.DereferenceStringOrHexLiteral(pair[1], model.V10, nil); err == nil {
				options = append(options, s)
			}
		}
		return options, true
	}
	return nil, false
}

// parseFontSize pulls the size operand of the Tf operator out of a default
// appearance string, 0 if absent.
func parseFontSize(da string) float64 {
	parts := strings.Fields(da)
	for i, p := range parts {
		if p == "Tf" && i >= 1 {
			if size, err := strconv.ParseFloat(parts[i-1], 64); err == nil {
				return size
			}
		}
	}
	return 0
}
