package lifecycle

// FieldKind tells a form how to render an input.
type FieldKind string

const (
	KindText  FieldKind = "text"
	KindPhase FieldKind = "phase"
	KindDate  FieldKind = "date"
)

// Field describes one input of the create-plant form.
type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
}

// FormFields lists, in display order, the inputs the create form shows for
// phase p. Date inputs are offered for the current phase and every phase
// before it; only the current phase's date is required, exactly as
// Validate demands.
func FormFields(p Phase) []Field {
	fields := []Field{
		{Name: FieldName, Label: "Name", Kind: KindText, Required: true},
		{Name: FieldGenetics, Label: "Genetics", Kind: KindText},
		{Name: FieldPhase, Label: "Phase", Kind: KindPhase, Required: true},
	}

	idx := p.index()
	if idx < 0 {
		return fields
	}

	required := RequiredDateField(p)
	for _, q := range phases[:idx+1] {
		name := RequiredDateField(q)
		fields = append(fields, Field{
			Name:     name,
			Label:    q.Label() + " date",
			Kind:     KindDate,
			Required: name == required,
		})
	}
	return fields
}
