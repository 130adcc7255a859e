package fields

// FieldDef is one slot of an entity schema: name, type, default format and
// alignment. Entities of the same kind share one Schema instance.
type FieldDef struct {
	Name      string
	Type      FieldType
	Format    string
	Alignment Alignment
	Visible   bool
}

// Schema is the fixed, ordered field definition table for one entity kind.
// It is built once at startup and never mutated afterwards.
type Schema []FieldDef

// NewFields materializes one Field per schema slot, positionally. Ordinals
// are assigned from the slot index and stay stable for the entity's lifetime.
func (s Schema) NewFields() []*Field {
	out := make([]*Field, len(s))
	for i, def := range s {
		out[i] = &Field{
			Ordinal:    i,
			Name:       def.Name,
			Type:       def.Type,
			Format:     def.Format,
			BaseFormat: def.Format,
			Alignment:  def.Alignment,
			Visible:    def.Visible,
		}
	}

	return out
}
