package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePhase(t *testing.T) {
	for _, in := range []string{"germination", "Vegetation", " FLOWERING "} {
		p, ok := ParsePhase(in)
		assert.True(t, ok, in)
		assert.True(t, p.Valid())
	}

	for _, in := range []string{"", "harvest", "floracion"} {
		_, ok := ParsePhase(in)
		assert.False(t, ok, in)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Germinación", Germination.Label())
	assert.Equal(t, "Vegetación", Vegetation.Label())
	assert.Equal(t, "Floración", Flowering.Label())
	assert.Equal(t, "drying", Phase("drying").Label())
}

func TestPhases_IsACopy(t *testing.T) {
	ps := Phases()
	ps[0] = "mutated"
	assert.Equal(t, []Phase{Germination, Vegetation, Flowering}, Phases())
}

func TestFormFields_MatchValidate(t *testing.T) {
	for _, p := range Phases() {
		t.Run(string(p), func(t *testing.T) {
			in := Input{Name: "Gorilla Glue #4", Phase: string(p)}
			var required []string
			for _, f := range FormFields(p) {
				if f.Kind == KindDate && f.Required {
					required = append(required, f.Name)
				}
			}

			assert.Equal(t, []string{RequiredDateField(p)}, required)

			_, err := Validate(in)
			var mf *MissingFieldError
			if assert.ErrorAs(t, err, &mf) {
				assert.Equal(t, required[0], mf.Field)
			}
		})
	}
}

func TestFormFields_VisibleDates(t *testing.T) {
	names := func(fs []Field) []string {
		var out []string
		for _, f := range fs {
			if f.Kind == KindDate {
				out = append(out, f.Name)
			}
		}
		return out
	}

	assert.Equal(t, []string{FieldGerminationDate}, names(FormFields(Germination)))
	assert.Equal(t, []string{FieldGerminationDate, FieldVegetationDate}, names(FormFields(Vegetation)))
	assert.Equal(t, []string{FieldGerminationDate, FieldVegetationDate, FieldFloweringDate}, names(FormFields(Flowering)))
	assert.Nil(t, names(FormFields(Phase("harvest"))))
}

func TestSummarize(t *testing.T) {
	got := Summarize([]Phase{Flowering, Vegetation, Flowering, Phase("bogus")})
	assert.Equal(t, []PhaseCount{
		{Phase: Germination, Label: "Germinación", Count: 0},
		{Phase: Vegetation, Label: "Vegetación", Count: 1},
		{Phase: Flowering, Label: "Floración", Count: 2},
	}, got)
}
