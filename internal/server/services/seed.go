package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/growlog/internal/common"
	"github.com/dmitrijs2005/growlog/internal/lifecycle"
	"github.com/dmitrijs2005/growlog/internal/server/models"
	"github.com/dmitrijs2005/growlog/internal/server/repositories/repomanager"
)

// Demo account created by Seed when the target email is not registered.
const (
	DemoEmail    = "test@example.com"
	DemoName     = "Usuario de Prueba"
	DemoPassword = "123456"
)

// DemoPlants is the fixed sample collection loaded by Seed.
var DemoPlants = []lifecycle.Input{
	{Name: "Northern Lights #1", Genetics: "Northern Lights", Phase: "flowering", GerminationDate: "2024-10-15", VegetationDate: "2024-11-01", FloweringDate: "2024-12-15"},
	{Name: "OG Kush Principal", Genetics: "OG Kush", Phase: "vegetation", GerminationDate: "2024-11-20", VegetationDate: "2024-12-05"},
	{Name: "White Widow #1", Genetics: "White Widow", Phase: "germination", GerminationDate: "2024-12-20"},
	{Name: "Blue Dream", Genetics: "Blue Dream", Phase: "flowering", GerminationDate: "2024-10-01", VegetationDate: "2024-10-20", FloweringDate: "2024-12-01"},
	{Name: "Amnesia Haze", Genetics: "Amnesia Haze", Phase: "vegetation", GerminationDate: "2024-11-10", VegetationDate: "2024-11-25"},
	{Name: "Purple Kush", Genetics: "Purple Kush", Phase: "flowering", GerminationDate: "2024-09-15", VegetationDate: "2024-10-05", FloweringDate: "2024-11-20"},
	{Name: "Green Crack", Genetics: "Green Crack", Phase: "germination", GerminationDate: "2024-12-25"},
	{Name: "Sour Diesel", Genetics: "Sour Diesel", Phase: "vegetation", GerminationDate: "2024-11-15", VegetationDate: "2024-12-01"},
	{Name: "Jack Herer", Genetics: "Jack Herer", Phase: "flowering", GerminationDate: "2024-10-10", VegetationDate: "2024-10-30", FloweringDate: "2024-12-10"},
	{Name: "Gorilla Glue #4", Genetics: "Gorilla Glue #4", Phase: "vegetation", GerminationDate: "2024-11-25", VegetationDate: "2024-12-10"},
	{Name: "AK-47", Genetics: "AK-47", Phase: "germination", GerminationDate: "2024-12-28"},
	{Name: "Skywalker OG", Genetics: "Skywalker OG", Phase: "flowering", GerminationDate: "2024-09-20", VegetationDate: "2024-10-10", FloweringDate: "2024-11-25"},
	{Name: "Girl Scout Cookies", Genetics: "Girl Scout Cookies", Phase: "vegetation", GerminationDate: "2024-11-18", VegetationDate: "2024-12-03"},
	{Name: "Pineapple Express", Genetics: "Pineapple Express", Phase: "flowering", GerminationDate: "2024-10-05", VegetationDate: "2024-10-25", FloweringDate: "2024-12-05"},
	{Name: "Strawberry Cough", Genetics: "Strawberry Cough", Phase: "germination", GerminationDate: "2024-12-30"},
}

// SeedResult reports what Seed did.
type SeedResult struct {
	User        *models.User
	UserCreated bool
	Deleted     int64
	Created     []*models.Plant
	Summary     []lifecycle.PhaseCount
}

// SeedService loads the demo collection for local development.
type SeedService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	users       *UserService
	plants      *PlantService
}

func NewSeedService(db *sql.DB, m repomanager.RepositoryManager, users *UserService, plants *PlantService) *SeedService {
	return &SeedService{db: db, repomanager: m, users: users, plants: plants}
}

// Seed makes sure an account for email exists (creating the demo user when
// it does not), removes all of its plants and inserts DemoPlants through
// the regular create path. Running it twice leaves the same collection.
func (s *SeedService) Seed(ctx context.Context, email string) (*SeedResult, error) {
	if email == "" {
		email = DemoEmail
	}

	res := &SeedResult{}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorNotFound):
		user, err = s.users.Register(ctx, email, DemoName, DemoPassword)
		if err != nil {
			return nil, fmt.Errorf("error creating demo user: %w", err)
		}
		res.UserCreated = true
	default:
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	res.User = user

	res.Deleted, err = s.repomanager.Plants(s.db).DeleteAllByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error deleting plants: %w", err)
	}

	for _, in := range DemoPlants {
		p, err := s.plants.Create(ctx, user.ID, in)
		if err != nil {
			return nil, fmt.Errorf("error creating %q: %w", in.Name, err)
		}
		res.Created = append(res.Created, p)
	}

	res.Summary, err = s.plants.Summary(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return res, nil
}
