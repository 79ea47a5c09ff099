package models

import (
	"time"

	"github.com/dmitrijs2005/growlog/internal/lifecycle"
)

// Plant is a stored plant record. It belongs to exactly one user for its
// whole lifetime; every read and delete is filtered by UserID.
type Plant struct {
	ID              string
	UserID          string
	Name            string
	Genetics        *string
	Phase           lifecycle.Phase
	GerminationDate *time.Time
	VegetationDate  *time.Time
	FloweringDate   *time.Time
	// PhotoKey is the object-storage key of the plant photo, nil when none
	// was uploaded.
	PhotoKey  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPlant builds an unsaved plant for ownerID from a validated record.
func NewPlant(ownerID string, r *lifecycle.Record) *Plant {
	return &Plant{
		UserID:          ownerID,
		Name:            r.Name,
		Genetics:        r.Genetics,
		Phase:           r.Phase,
		GerminationDate: r.Germination,
		VegetationDate:  r.Vegetation,
		FloweringDate:   r.Flowering,
	}
}

// Dates returns the phase dates in the shape the lifecycle helpers expect.
func (p *Plant) Dates() lifecycle.Dates {
	return lifecycle.Dates{
		Germination: p.GerminationDate,
		Vegetation:  p.VegetationDate,
		Flowering:   p.FloweringDate,
	}
}
