package template

import (
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/formfold/mcp-pdf-forms/internal/forms/diag"
)

// maxNameDepth caps the Parent climb so a cyclic name chain in a corrupt
// document cannot loop forever.
const maxNameDepth = 32

// ResolveKey computes the canonical identifier of a widget annotation. The
// local name is the nearest T entry found while climbing the Parent chain;
// with useFullName the key is the root-first dot-joined chain of all local
// names. Radio siblings resolve to the same key on purpose: the builder
// merges them into one logical field.
func ResolveKey(ctx *model.Context, annot types.Dict, useFullName bool, page int) (string, error) {
	var chain []string // leaf first
	d := annot
	for depth := 0; d != nil && depth < maxNameDepth; depth++ {
		if obj, ok := lookup(ctx, d, Path{"T"}); ok {
			if name, err := ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil); err == nil && name != "" {
				chain = append(chain, name)
			}
		}
		raw, found := d.Find("Parent")
		if !found {
			break
		}
		parent, err := ctx.DereferenceDict(raw)
		if err != nil || parent == nil {
			break
		}
		d = parent
	}

	if len(chain) == 0 {
		return "", &diag.KeyResolutionError{Page: page}
	}
	if !useFullName {
		return chain[0], nil
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return strings.Join(chain, "."), nil
}
