package models

import (
	"github.com/jinzhu/copier"
	log "github.com/sirupsen/logrus"

	"github.com/quantfx/fxterm/src/fields"
)

// Keyed is implemented by every entity kind: a stable business key used for
// map lookups inside collections.
type Keyed interface {
	Key() string
}

// RowScanner abstracts one row of a tabular result set, as produced by
// database/sql. Hydration functions consume it so the store layer stays
// decoupled from the entity kinds.
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// Entity owns the ordered Field list of one record, one Field per schema
// slot. The native typed properties on each concrete kind are authoritative;
// setters push the value into the matching Field so generic views can render
// by ordinal alone, and formatted text is derived on read.
type Entity struct {
	Schema fields.Schema
	Fields []*fields.Field
}

func newEntity(schema fields.Schema) Entity {
	return Entity{
		Schema: schema,
		Fields: schema.NewFields(),
	}
}

// Field returns the field at the given ordinal, or nil when out of range.
// Out-of-range access degrades rather than raising so views can render
// partially-initialized entities.
func (e *Entity) Field(ordinal int) *fields.Field {
	if ordinal < 0 || ordinal >= len(e.Fields) {
		return nil
	}

	return e.Fields[ordinal]
}

// SetFieldValue is a no-op for out-of-range ordinals.
func (e *Entity) SetFieldValue(ordinal int, v fields.Value) {
	if f := e.Field(ordinal); f != nil {
		f.SetValue(v)
	}
}

// SetFieldFormat is a no-op for out-of-range ordinals.
func (e *Entity) SetFieldFormat(ordinal int, format string) {
	if f := e.Field(ordinal); f != nil {
		f.SetFormat(format)
	}
}

func (e *Entity) FormattedText(ordinal int) string {
	f := e.Field(ordinal)
	if f == nil {
		return ""
	}

	return f.FormattedText()
}

func (e *Entity) FieldCount() int {
	return len(e.Fields)
}

// cloneFields deep-copies the field list into dst. The schema stays shared:
// it is read-only and identical across all entities of one kind.
func (e *Entity) cloneFields(dst *Entity) {
	dst.Schema = e.Schema

	dst.Fields = nil
	if err := copier.CopyWithOption(&dst.Fields, e.Fields, copier.Option{DeepCopy: true}); err != nil {
		log.Errorf("Entity.cloneFields: failed to copy field list: %v", err)
		dst.Fields = e.Schema.NewFields()
	}
}
