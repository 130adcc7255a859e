package fields

import (
	"time"
)

// FieldType describes which formatter and sort comparator apply to a field.
type FieldType int

const (
	FieldTypeNotSortable FieldType = iota
	FieldTypeString
	FieldTypeInt
	FieldTypeDouble
	FieldTypeDate
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

type ValueKind int

const (
	KindNone ValueKind = iota
	KindString
	KindInt
	KindDouble
	KindDate
	KindBool
)

// Value is a tagged union for a single cell value. The zero Value is absent.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Time  time.Time
	Bool  bool
}

func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func IntValue(i int64) Value {
	return Value{Kind: KindInt, Int: i}
}

func DoubleValue(f float64) Value {
	return Value{Kind: KindDouble, Float: f}
}

func DateValue(t time.Time) Value {
	return Value{Kind: KindDate, Time: t}
}

func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

func (v Value) IsAbsent() bool {
	return v.Kind == KindNone
}

// Field is one named, typed, formatted slot of an entity. Ordinal is the
// schema position and is stable for the lifetime of the owning schema.
type Field struct {
	Ordinal    int
	Name       string
	Type       FieldType
	Format     string
	BaseFormat string
	Alignment  Alignment
	Visible    bool
	Value      Value
}

func (f *Field) SetValue(v Value) {
	f.Value = v
}

func (f *Field) SetFormat(format string) {
	f.Format = format
	f.BaseFormat = format
}

// ApplyPrecision recomposes the format from the stored base mask and a
// fractional-digits suffix derived from instrument precision. Deriving from
// BaseFormat every time keeps re-application idempotent.
func (f *Field) ApplyPrecision(digits int) {
	if f.Type != FieldTypeDouble {
		return
	}

	f.Format = composePrecision(f.BaseFormat, digits)
}

// FormattedText renders the value: empty if absent, the natural string form if
// the format is empty, otherwise the mask (Double) or date pattern (Date).
// Rendering is pure: it depends only on (Type, Format, Value).
func (f *Field) FormattedText() string {
	return formatValue(f.Type, f.Format, f.Value)
}
