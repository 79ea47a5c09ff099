package lifecycle

import (
	"errors"
	"fmt"
)

// Field names as they appear on the wire and in validation errors.
const (
	FieldName            = "name"
	FieldGenetics        = "genetics"
	FieldPhase           = "phase"
	FieldGerminationDate = "germinationDate"
	FieldVegetationDate  = "vegetationDate"
	FieldFloweringDate   = "floweringDate"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidDate  = errors.New("invalid date")
)

// MissingFieldError reports a required input that is absent for the
// declared phase. It matches ErrMissingField with errors.Is.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	switch e.Field {
	case FieldGerminationDate:
		return "germinationDate is required for the germination phase"
	case FieldVegetationDate:
		return "vegetationDate is required for the vegetation phase"
	case FieldFloweringDate:
		return "floweringDate is required for the flowering phase"
	}
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// InvalidDateError reports a supplied date that could not be parsed.
type InvalidDateError struct {
	Field string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid date (expected YYYY-MM-DD)", e.Field, e.Value)
}

func (e *InvalidDateError) Is(target error) bool { return target == ErrInvalidDate }
