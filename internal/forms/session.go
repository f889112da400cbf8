// Package forms is the read/write core of the form-field layer. A Session
// owns one document for its lifetime: the read path turns the document's
// widget annotations into a typed field mapping, the write path synthesizes
// field visuals and interactive objects, and the fill pass writes values into
// whichever of the two produced the mapping.
//
// A Session mutates its document graph in place and is not safe for
// concurrent use; give each worker its own Session.
package forms

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/formfold/mcp-pdf-forms/internal/forms/diag"
	"github.com/formfold/mcp-pdf-forms/internal/forms/fields"
	"github.com/formfold/mcp-pdf-forms/internal/forms/fill"
	"github.com/formfold/mcp-pdf-forms/internal/forms/merge"
	"github.com/formfold/mcp-pdf-forms/internal/forms/overlay"
	"github.com/formfold/mcp-pdf-forms/internal/forms/template"
)

// SessionOptions configures a document session.
type SessionOptions struct {
	// UseFullNames keys fields by their fully qualified dot-joined names.
	UseFullNames bool

	// StrictFill turns fill value shape mismatches into hard errors instead
	// of diagnostics.
	StrictFill bool
}

// Session wraps one open document and its field mapping.
type Session struct {
	ctx     *model.Context
	mapping fields.Mapping
	diags   []diag.Diagnostic
	opts    SessionOptions
}

// Open reads a fully buffered document and builds its field mapping. Widget
// faults never fail Open; they surface through Diagnostics.
func Open(rs io.ReadSeeker, opts SessionOptions) (*Session, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	mapping, diags := template.Build(ctx, template.Options{UseFullNames: opts.UseFullNames})
	return &Session{ctx: ctx, mapping: mapping, diags: diags, opts: opts}, nil
}

// OpenBytes opens a document held in memory.
func OpenBytes(b []byte, opts SessionOptions) (*Session, error) {
	return Open(bytes.NewReader(b), opts)
}

// PageCount returns the document's page count.
func (s *Session) PageCount() int {
	return s.ctx.PageCount
}

// Fields returns the live field mapping. It reflects both extracted and
// created fields and is mutated in place by Fill.
func (s *Session) Fields() fields.Mapping {
	return s.mapping
}

// Diagnostics returns every recovered fault accumulated so far, in order.
func (s *Session) Diagnostics() []diag.Diagnostic {
	return s.diags
}

// CreateField creates a single field. It is the batch case of size one.
func (s *Session) CreateField(spec fields.WidgetSpec) error {
	return s.CreateFields(spec)
}

// CreateFields renders the overlay for all specs and merges it together with
// the interactive field objects in one pass over the document. Creating N
// fields this way costs one document mutation, not N.
func (s *Session) CreateFields(specs ...fields.WidgetSpec) error {
	if len(specs) == 0 {
		return nil
	}

	overlays, err := overlay.RenderBatch(specs, s.ctx.PageCount)
	if err != nil {
		return err
	}

	// Group specs by page, first-seen page order, spec order within a page.
	byPage := map[int]int{}
	var groups []merge.PageGroup
	for _, spec := range specs {
		i, seen := byPage[spec.PageNumber]
		if !seen {
			i = len(groups)
			byPage[spec.PageNumber] = i
			groups = append(groups, merge.PageGroup{Page: spec.PageNumber})
		}
		groups[i].Specs = append(groups[i].Specs, spec)
	}

	created, err := merge.Batch(s.ctx, overlays, groups)
	if err != nil {
		return err
	}
	for _, f := range created {
		s.mapping.Insert(f)
	}
	return nil
}

// Fill applies a name-to-value mapping. Unknown names and nil values are
// silently tolerated; shape mismatches become diagnostics unless StrictFill
// is set.
func (s *Session) Fill(values map[string]any) error {
	diags, err := fill.Apply(s.mapping, values, fill.Options{Strict: s.opts.StrictFill})
	s.diags = append(s.diags, diags...)
	return err
}

// Bytes serializes the document graph, including every mutation made through
// this session.
func (s *Session) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := api.WriteContext(s.ctx, &buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF context: %w", err)
	}
	return buf.Bytes(), nil
}
