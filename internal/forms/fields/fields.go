// Package fields holds the typed in-memory model of interactive form fields:
// the closed set of field variants produced by the read path and the widget
// specs consumed by the write path.
package fields

import (
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Kind identifies a field variant. The set is closed; the few sites that need
// per-variant behavior (construction, fill coercion, overlay painting) switch
// over it exhaustively.
type Kind string

const (
	KindText      Kind = "text"
	KindCheckbox  Kind = "checkbox"
	KindRadio     Kind = "radio"
	KindDropdown  Kind = "dropdown"
	KindListbox   Kind = "listbox"
	KindSignature Kind = "signature"
	KindImage     Kind = "image"
)

// Rect is an axis-aligned rectangle in PDF user space, origin bottom-left.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Color is an RGB color with components in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Placement is one on-page occurrence of a field. Most fields have exactly
// one; radio groups own an ordered list, one per sibling widget.
type Placement struct {
	Page int  `json:"page"`
	Rect Rect `json:"rect"`

	// Export is the appearance-state name selecting this placement
	// (radio/checkbox on-state). Resolved from AP.N keys, positional fallback.
	Export string `json:"export,omitempty"`

	// Obj is the underlying widget annotation dictionary, when known.
	Obj types.Dict `json:"-"`
}

// Field is one logical form field. Variant-specific members are meaningful
// only for the matching Kind and zero-valued otherwise.
type Field struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Tooltip  string `json:"tooltip,omitempty"`
	Required bool   `json:"required"`
	ReadOnly bool   `json:"read_only"`

	Placements []Placement `json:"placements"`

	// Value holds the current value: string for text and choice fields,
	// bool for checkboxes, []byte for signatures and images, nil if unset.
	Value any `json:"value,omitempty"`

	// Text
	MaxLength *int    `json:"max_length,omitempty"`
	Multiline bool    `json:"multiline,omitempty"`
	FontSize  float64 `json:"font_size,omitempty"`

	// Checkbox
	Size float64 `json:"size,omitempty"`

	// Dropdown / Listbox
	Options  []string `json:"options,omitempty"`
	Editable bool     `json:"editable,omitempty"`

	// Obj is the underlying field dictionary (the group parent for radios).
	Obj types.Dict `json:"-"`
}

// Page returns the page of the field's first placement, 0 if none.
func (f *Field) Page() int {
	if len(f.Placements) == 0 {
		return 0
	}
	return f.Placements[0].Page
}

// Rect returns the rect of the field's first placement.
func (f *Field) Rect() Rect {
	if len(f.Placements) == 0 {
		return Rect{}
	}
	return f.Placements[0].Rect
}

// Merge folds another occurrence of the same logical field into f. Radio
// siblings arrive as separate annotations sharing one name; their placements
// accumulate instead of overwriting each other.
func (f *Field) Merge(other *Field) {
	f.Placements = append(f.Placements, other.Placements...)
	if f.Value == nil {
		f.Value = other.Value
	}
	if len(f.Options) == 0 {
		f.Options = other.Options
	}
}

// Mapping is the name-keyed collection of known fields in a document session.
type Mapping map[string]*Field

// Insert adds a field under its name, merging placements on a repeated key.
func (m Mapping) Insert(f *Field) {
	if existing, ok := m[f.Name]; ok {
		existing.Merge(f)
		return
	}
	m[f.Name] = f
}

// Names returns the field names in sorted order.
func (m Mapping) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WidgetSpec describes a field to be created. It mirrors Field plus
// presentation hints consumed only while painting the overlay; the hints are
// not persisted on the resulting Field.
type WidgetSpec struct {
	Name       string  `json:"name"`
	Kind       Kind    `json:"kind"`
	PageNumber int     `json:"page_number"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Tooltip    string  `json:"tooltip,omitempty"`
	Required   bool    `json:"required,omitempty"`
	ReadOnly   bool    `json:"read_only,omitempty"`

	// Text
	MaxLength *int    `json:"max_length,omitempty"`
	Multiline bool    `json:"multiline,omitempty"`
	FontSize  float64 `json:"font_size,omitempty"`

	// Checkbox
	Size float64 `json:"size,omitempty"`

	// Dropdown / Listbox
	Options  []string `json:"options,omitempty"`
	Editable bool     `json:"editable,omitempty"`

	// Radio: one rect per sibling widget, all on PageNumber. When set, the
	// top-level X/Y/Width/Height are ignored.
	Placements []Rect `json:"placements,omitempty"`

	// Presentation hints, overlay-only.
	BackgroundColor *Color  `json:"background_color,omitempty"`
	BorderColor     *Color  `json:"border_color,omitempty"`
	BorderWidth     float64 `json:"border_width,omitempty"`
}

// Default geometry applied when a spec leaves width/height at zero.
const (
	DefaultTextWidth    = 144
	DefaultTextHeight   = 24
	DefaultCheckboxSize = 18
	DefaultChoiceWidth  = 144
	DefaultChoiceHeight = 24
	DefaultFontSize     = 12
)

// Rects returns the spec's placement rectangles with defaults applied. A
// non-radio spec yields exactly one rect.
func (s *WidgetSpec) Rects() []Rect {
	if s.Kind == KindRadio && len(s.Placements) > 0 {
		return s.Placements
	}
	w, h := s.Width, s.Height
	switch s.Kind {
	case KindCheckbox, KindRadio:
		size := s.Size
		if size == 0 {
			size = DefaultCheckboxSize
		}
		if w == 0 {
			w = size
		}
		if h == 0 {
			h = size
		}
	case KindText, KindSignature, KindImage:
		if w == 0 {
			w = DefaultTextWidth
		}
		if h == 0 {
			h = DefaultTextHeight
		}
	case KindDropdown, KindListbox:
		if w == 0 {
			w = DefaultChoiceWidth
		}
		if h == 0 {
			h = DefaultChoiceHeight
		}
	}
	return []Rect{{X: s.X, Y: s.Y, Width: w, Height: h}}
}
