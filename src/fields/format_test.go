package fields

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDouble(t *testing.T) {
	t.Run("fixed precision", func(t *testing.T) {
		assert.Equal(t, "1.23450", formatDouble("0.00000", 1.2345))
		assert.Equal(t, "0.00", formatDouble("0.00", 0))
		assert.Equal(t, "-2.50", formatDouble("0.00", -2.5))
	})

	t.Run("grouping", func(t *testing.T) {
		assert.Equal(t, "1,234,567.89", formatDouble("#,##0.00", 1234567.891))
		assert.Equal(t, "-12,000.00", formatDouble("#,##0.00", -12000))
		assert.Equal(t, "999.10", formatDouble("#,##0.00", 999.1))
	})

	t.Run("no fraction", func(t *testing.T) {
		assert.Equal(t, "10,000", formatDouble("#,##0", 10000.4))
	})
}

func TestFormattedText(t *testing.T) {
	t.Run("absent value renders empty", func(t *testing.T) {
		f := &Field{Type: FieldTypeDouble, Format: "0.00"}
		assert.Equal(t, "", f.FormattedText())
	})

	t.Run("empty format uses natural form", func(t *testing.T) {
		f := &Field{Type: FieldTypeDouble, Value: DoubleValue(1.25)}
		assert.Equal(t, "1.25", f.FormattedText())
	})

	t.Run("date pattern", func(t *testing.T) {
		ts := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
		f := &Field{Type: FieldTypeDate, Format: "01/02 15:04", Value: DateValue(ts)}
		assert.Equal(t, "03/05 14:30", f.FormattedText())
	})

	t.Run("pure and deterministic", func(t *testing.T) {
		f := &Field{Type: FieldTypeDouble, Format: "#,##0.000", Value: DoubleValue(98765.4321)}
		first := f.FormattedText()
		second := f.FormattedText()
		assert.Equal(t, first, second)
		assert.Equal(t, "98,765.432", first)
	})
}

func TestApplyPrecision(t *testing.T) {
	t.Run("composes from base mask", func(t *testing.T) {
		f := &Field{Type: FieldTypeDouble, Format: "#,##0", BaseFormat: "#,##0"}
		f.ApplyPrecision(5)
		assert.Equal(t, "#,##0.00000", f.Format)
	})

	t.Run("idempotent on re-application", func(t *testing.T) {
		f := &Field{Type: FieldTypeDouble, Format: "0", BaseFormat: "0"}
		f.ApplyPrecision(3)
		first := f.Format
		f.ApplyPrecision(3)
		assert.Equal(t, first, f.Format)
	})

	t.Run("ignored for non-double fields", func(t *testing.T) {
		f := &Field{Type: FieldTypeString, Format: "", BaseFormat: ""}
		f.ApplyPrecision(4)
		assert.Equal(t, "", f.Format)
	})
}

func TestSchemaNewFields(t *testing.T) {
	schema := Schema{
		{Name: "Symbol", Type: FieldTypeString, Alignment: AlignLeft, Visible: true},
		{Name: "Bid", Type: FieldTypeDouble, Format: "0.00000", Alignment: AlignRight, Visible: true},
	}

	flds := schema.NewFields()
	assert.Len(t, flds, 2)
	assert.Equal(t, 0, flds[0].Ordinal)
	assert.Equal(t, 1, flds[1].Ordinal)
	assert.Equal(t, "Bid", flds[1].Name)
	assert.Equal(t, "0.00000", flds[1].BaseFormat)
}
