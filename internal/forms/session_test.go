package forms

import (
	"fmt"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formfold/mcp-pdf-forms/internal/forms/diag"
	"github.com/formfold/mcp-pdf-forms/internal/forms/fields"
	"github.com/formfold/mcp-pdf-forms/internal/forms/pdftest"
)

func TestOpenBytes_BlankDocument(t *testing.T) {
	s, err := OpenBytes(pdftest.BlankPDF(2), SessionOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, s.PageCount())
	assert.Empty(t, s.Fields())
	assert.Empty(t, s.Diagnostics())
}

func TestOpenBytes_Garbage(t *testing.T) {
	_, err := OpenBytes([]byte("not a pdf"), SessionOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read PDF context")
}

func TestSession_CreateFillRoundTrip(t *testing.T) {
	s, err := OpenBytes(pdftest.BlankPDF(1), SessionOptions{})
	require.NoError(t, err)

	err = s.CreateFields(
		fields.WidgetSpec{Name: "email", Kind: fields.KindText, PageNumber: 1, X: 100, Y: 700},
		fields.WidgetSpec{Name: "subscribed", Kind: fields.KindCheckbox, PageNumber: 1, X: 100, Y: 650},
	)
	require.NoError(t, err)
	require.Len(t, s.Fields(), 2)

	require.NoError(t, s.Fill(map[string]any{
		"email":      "a@b.c",
		"subscribed": true,
	}))
	assert.Empty(t, s.Diagnostics())

	out, err := s.Bytes()
	require.NoError(t, err)

	// A fresh session over the serialized bytes sees the same fields with
	// their filled values.
	reread, err := OpenBytes(out, SessionOptions{})
	require.NoError(t, err)
	require.Len(t, reread.Fields(), 2)

	email := reread.Fields()["email"]
	require.NotNil(t, email)
	assert.Equal(t, fields.KindText, email.Kind)
	assert.Equal(t, "a@b.c", email.Value)

	subscribed := reread.Fields()["subscribed"]
	require.NotNil(t, subscribed)
	assert.Equal(t, fields.KindCheckbox, subscribed.Kind)
	assert.Equal(t, true, subscribed.Value)
}

func TestSession_BatchAcrossPages(t *testing.T) {
	s, err := OpenBytes(pdftest.BlankPDF(3), SessionOptions{})
	require.NoError(t, err)

	err = s.CreateFields(
		fields.WidgetSpec{Name: "p1", Kind: fields.KindText, PageNumber: 1},
		fields.WidgetSpec{Name: "p3", Kind: fields.KindText, PageNumber: 3},
		fields.WidgetSpec{Name: "p1b", Kind: fields.KindText, PageNumber: 1, Y: 100},
	)
	require.NoError(t, err)

	m := s.Fields()
	require.Len(t, m, 3)
	assert.Equal(t, 1, m["p1"].Page())
	assert.Equal(t, 1, m["p1b"].Page())
	assert.Equal(t, 3, m["p3"].Page())
}

func TestSession_CreateFieldEqualsBatchOfOne(t *testing.T) {
	spec := fields.WidgetSpec{Name: "only", Kind: fields.KindText, PageNumber: 1}

	a, err := OpenBytes(pdftest.BlankPDF(1), SessionOptions{})
	require.NoError(t, err)
	require.NoError(t, a.CreateField(spec))

	b, err := OpenBytes(pdftest.BlankPDF(1), SessionOptions{})
	require.NoError(t, err)
	require.NoError(t, b.CreateFields(spec))

	fa, fb := a.Fields()["only"], b.Fields()["only"]
	require.NotNil(t, fa)
	require.NotNil(t, fb)
	assert.Equal(t, fa.Rect(), fb.Rect())
	assert.Equal(t, fa.Kind, fb.Kind)
}

func TestSession_CreateFieldsPageOutOfRange(t *testing.T) {
	s, err := OpenBytes(pdftest.BlankPDF(2), SessionOptions{})
	require.NoError(t, err)

	err = s.CreateFields(fields.WidgetSpec{Name: "x", Kind: fields.KindText, PageNumber: 5})

	var perr *diag.PageRangeError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 5, perr.Page)
	assert.Equal(t, 2, perr.PageCount)
	assert.Empty(t, s.Fields(), "a failed batch leaves the mapping untouched")
}

func TestSession_CreateFieldsNoSpecs(t *testing.T) {
	s, err := OpenBytes(pdftest.BlankPDF(1), SessionOptions{})
	require.NoError(t, err)

	require.NoError(t, s.CreateFields())
	assert.Empty(t, s.Fields())
}

func TestSession_FillDiagnosticsAccumulate(t *testing.T) {
	s, err := OpenBytes(pdftest.BlankPDF(1), SessionOptions{})
	require.NoError(t, err)
	require.NoError(t, s.CreateFields(
		fields.WidgetSpec{Name: "n", Kind: fields.KindText, PageNumber: 1},
	))

	require.NoError(t, s.Fill(map[string]any{"n": 42}))
	require.NoError(t, s.Fill(map[string]any{"n": true}))

	diags := s.Diagnostics()
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, diag.KindValueType, d.Kind)
		assert.Equal(t, "n", d.Field)
	}
}

func TestSession_StrictFill(t *testing.T) {
	s, err := OpenBytes(pdftest.BlankPDF(1), SessionOptions{StrictFill: true})
	require.NoError(t, err)
	require.NoError(t, s.CreateFields(
		fields.WidgetSpec{Name: "n", Kind: fields.KindText, PageNumber: 1},
	))

	err = s.Fill(map[string]any{"n": 42})

	var verr *diag.ValueTypeError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "n", verr.Field)
}

func TestSession_RadioRoundTrip(t *testing.T) {
	s, err := OpenBytes(pdftest.BlankPDF(1), SessionOptions{})
	require.NoError(t, err)

	require.NoError(t, s.CreateFields(fields.WidgetSpec{
		Name:       "size",
		Kind:       fields.KindRadio,
		PageNumber: 1,
		Placements: []fields.Rect{
			{X: 50, Y: 50, Width: 18, Height: 18},
			{X: 90, Y: 50, Width: 18, Height: 18},
		},
	}))
	require.NoError(t, s.Fill(map[string]any{"size": "1"}))
	assert.Empty(t, s.Diagnostics())

	out, err := s.Bytes()
	require.NoError(t, err)

	reread, err := OpenBytes(out, SessionOptions{})
	require.NoError(t, err)

	f := reread.Fields()["size"]
	require.NotNil(t, f)
	assert.Equal(t, fields.KindRadio, f.Kind)
	require.Len(t, f.Placements, 2)
	assert.Equal(t, "1", f.Value, "the selected positional export survives serialization")
}

func TestSession_FillReopenedRadioGroupWritesParent(t *testing.T) {
	s, err := OpenBytes(pdftest.BlankPDF(1), SessionOptions{})
	require.NoError(t, err)
	require.NoError(t, s.CreateFields(fields.WidgetSpec{
		Name:       "size",
		Kind:       fields.KindRadio,
		PageNumber: 1,
		Placements: []fields.Rect{
			{X: 50, Y: 50, Width: 18, Height: 18},
			{X: 90, Y: 50, Width: 18, Height: 18},
		},
	}))
	out, err := s.Bytes()
	require.NoError(t, err)

	// Filling through a fresh session must set V on the group parent, the
	// dictionary viewers read the selection from, not on a kid widget.
	reopened, err := OpenBytes(out, SessionOptions{})
	require.NoError(t, err)
	require.NoError(t, reopened.Fill(map[string]any{"size": "1"}))
	assert.Empty(t, reopened.Diagnostics())

	f := reopened.Fields()["size"]
	require.NotNil(t, f)
	require.NotNil(t, f.Obj)
	assert.Equal(t, types.Name("1"), f.Obj["V"])
	_, isKid := f.Obj.Find("Subtype")
	assert.False(t, isKid, "the terminal dictionary is the parent, not a widget kid")

	refilled, err := reopened.Bytes()
	require.NoError(t, err)
	final, err := OpenBytes(refilled, SessionOptions{})
	require.NoError(t, err)
	assert.Equal(t, "1", final.Fields()["size"].Value)
}

// benchmarkSpecs lays out n text fields down the first page.
func benchmarkSpecs(n int) []fields.WidgetSpec {
	specs := make([]fields.WidgetSpec, n)
	for i := range specs {
		specs[i] = fields.WidgetSpec{
			Name:       fmt.Sprintf("field_%d", i),
			Kind:       fields.KindText,
			PageNumber: 1,
			X:          72,
			Y:          float64(720 - (28*i)%600),
		}
	}
	return specs
}

func BenchmarkCreateFields(b *testing.B) {
	doc := pdftest.BlankPDF(1)
	specs := benchmarkSpecs(20)

	b.Run("batch", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			s, err := OpenBytes(doc, SessionOptions{})
			if err != nil {
				b.Fatal(err)
			}
			if err := s.CreateFields(specs...); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("single", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			s, err := OpenBytes(doc, SessionOptions{})
			if err != nil {
				b.Fatal(err)
			}
			for _, spec := range specs {
				if err := s.CreateField(spec); err != nil {
					b.Fatal(err)
				}
			}
		}
	})
}
