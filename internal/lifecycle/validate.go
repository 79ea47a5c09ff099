package lifecycle

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/growlog/internal/common"
)

// Input is a candidate plant as submitted by a user. Dates are raw strings;
// an empty string means "not supplied".
type Input struct {
	Name            string
	Genetics        string
	Phase           string
	GerminationDate string
	VegetationDate  string
	FloweringDate   string
}

// Dates are the phase-transition dates of a plant, nil when unknown.
type Dates struct {
	Germination *time.Time
	Vegetation  *time.Time
	Flowering   *time.Time
}

// Record is a validated, normalized plant ready for storage.
type Record struct {
	Name     string
	Genetics *string
	Phase    Phase
	Dates
}

// Validate checks in against the creation rules and normalizes it.
//
// Checks run in a fixed order and stop at the first failure: name, phase,
// then the date required by the declared phase. Only the current phase's
// date is demanded; earlier phases may be skipped (a plant can start being
// tracked mid-lifecycle). Supplied dates are parsed afterwards.
func Validate(in Input) (*Record, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &MissingFieldError{Field: FieldName}
	}

	phase, ok := ParsePhase(in.Phase)
	if !ok {
		return nil, &MissingFieldError{Field: FieldPhase}
	}

	raw := map[string]string{
		FieldGerminationDate: strings.TrimSpace(in.GerminationDate),
		FieldVegetationDate:  strings.TrimSpace(in.VegetationDate),
		FieldFloweringDate:   strings.TrimSpace(in.FloweringDate),
	}

	required := RequiredDateField(phase)
	if raw[required] == "" {
		return nil, &MissingFieldError{Field: required}
	}

	rec := &Record{Name: name, Phase: phase}

	if g := strings.TrimSpace(in.Genetics); g != "" {
		rec.Genetics = &g
	}

	var err error
	if rec.Germination, err = parseOptional(FieldGerminationDate, raw[FieldGerminationDate]); err != nil {
		return nil, err
	}
	if rec.Vegetation, err = parseOptional(FieldVegetationDate, raw[FieldVegetationDate]); err != nil {
		return nil, err
	}
	if rec.Flowering, err = parseOptional(FieldFloweringDate, raw[FieldFloweringDate]); err != nil {
		return nil, err
	}

	return rec, nil
}

// RequiredDateField names the single date field phase p demands at creation.
func RequiredDateField(p Phase) string {
	switch p {
	case Germination:
		return FieldGerminationDate
	case Vegetation:
		return FieldVegetationDate
	case Flowering:
		return FieldFloweringDate
	}
	return ""
}

// ParseDate reads an ISO calendar date. Full RFC 3339 timestamps are also
// accepted and keep the calendar day written in them, whatever the offset.
// Either way the result is midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(common.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return TruncateDay(t), nil
}

// TruncateDay returns midnight UTC of the calendar day t falls on in its
// own location.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseOptional(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, &InvalidDateError{Field: field, Value: value}
	}
	return &t, nil
}
