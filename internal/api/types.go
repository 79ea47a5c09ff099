// Package api holds the JSON request and response bodies exchanged between
// the GrowLog server and its clients.
package api

import (
	"time"

	"github.com/dmitrijs2005/growlog/internal/lifecycle"
)

// Route paths shared by the server mux and the client.
const (
	PathPing     = "/api/ping"
	PathRegister = "/api/register"
	PathLogin    = "/api/login"
	PathRefresh  = "/api/refresh"
	PathLogout   = "/api/logout"
	PathMe       = "/api/me"
	PathPlants   = "/api/plants"
	PathSummary  = "/api/plants/summary"
	PathForm     = "/api/plants/form"
)

// QueryKey names the photo key parameter of DELETE on a photo path.
const QueryKey = "key"

// PlantPath is the URL path of one plant.
func PlantPath(id string) string { return PathPlants + "/" + id }

// PhotoPath is the URL path of a plant photo.
func PhotoPath(id string) string { return PlantPath(id) + "/photo" }

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest is the body of both /api/refresh and /api/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// CreatePlantRequest carries dates as YYYY-MM-DD strings; empty means unset.
type CreatePlantRequest struct {
	Name            string `json:"name"`
	Genetics        string `json:"genetics,omitempty"`
	Phase           string `json:"phase"`
	GerminationDate string `json:"germinationDate,omitempty"`
	VegetationDate  string `json:"vegetationDate,omitempty"`
	FloweringDate   string `json:"floweringDate,omitempty"`
}

func (r CreatePlantRequest) Input() lifecycle.Input {
	return lifecycle.Input{
		Name:            r.Name,
		Genetics:        r.Genetics,
		Phase:           r.Phase,
		GerminationDate: r.GerminationDate,
		VegetationDate:  r.VegetationDate,
		FloweringDate:   r.FloweringDate,
	}
}

// NewCreatePlantRequest is the inverse of Input.
func NewCreatePlantRequest(in lifecycle.Input) CreatePlantRequest {
	return CreatePlantRequest{
		Name:            in.Name,
		Genetics:        in.Genetics,
		Phase:           in.Phase,
		GerminationDate: in.GerminationDate,
		VegetationDate:  in.VegetationDate,
		FloweringDate:   in.FloweringDate,
	}
}

// Plant is a stored plant plus the values derived from its dates at
// response time.
type Plant struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Genetics        *string         `json:"genetics"`
	Phase           lifecycle.Phase `json:"phase"`
	PhaseLabel      string          `json:"phaseLabel"`
	GerminationDate *string         `json:"germinationDate"`
	VegetationDate  *string         `json:"vegetationDate"`
	FloweringDate   *string         `json:"floweringDate"`
	AgeDays         int             `json:"ageDays"`
	HasPhoto        bool            `json:"hasPhoto"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Timeline        *Timeline       `json:"timeline,omitempty"`
}

// Timeline is the number of days spent in each phase; null when unknown.
type Timeline struct {
	GerminationDays *int `json:"germinationDays"`
	VegetationDays  *int `json:"vegetationDays"`
	FloweringDays   *int `json:"floweringDays"`
}

type SummaryResponse struct {
	Total  int                    `json:"total"`
	Phases []lifecycle.PhaseCount `json:"phases"`
}

type FormResponse struct {
	Phase  lifecycle.Phase   `json:"phase"`
	Fields []lifecycle.Field `json:"fields"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"contentType,omitempty"`
}

type PhotoUploadResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type PhotoURLResponse struct {
	URL string `json:"url"`
}
