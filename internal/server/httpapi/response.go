package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/growlog/internal/api"
	"github.com/dmitrijs2005/growlog/internal/common"
	"github.com/dmitrijs2005/growlog/internal/lifecycle"
	"github.com/dmitrijs2005/growlog/internal/server/models"
)

const (
	msgInternal = "internal server error"
	msgNotFound = "plant not found"

	maxBodyBytes = 1 << 20
)

var errEmptyBody = errors.New("request body is empty")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// internalError logs the cause and answers with a generic message.
func (s *HTTPServer) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(common.DateLayout)
	return &s
}

func toAPIUser(u *models.User) api.User {
	return api.User{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

// toAPIPlant renders p with its age as of now. The timeline is only added
// when withTimeline is set (detail view).
func toAPIPlant(p *models.Plant, now time.Time, withTimeline bool) api.Plant {
	dates := p.Dates()
	out := api.Plant{
		ID:              p.ID,
		Name:            p.Name,
		Genetics:        p.Genetics,
		Phase:           p.Phase,
		PhaseLabel:      p.Phase.Label(),
		GerminationDate: formatDate(p.GerminationDate),
		VegetationDate:  formatDate(p.VegetationDate),
		FloweringDate:   formatDate(p.FloweringDate),
		AgeDays:         lifecycle.Age(dates, now),
		HasPhoto:        p.PhotoKey != nil,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if withTimeline {
		tl := lifecycle.Durations(dates, now)
		out.Timeline = &api.Timeline{
			GerminationDays: tl.GerminationDays,
			VegetationDays:  tl.VegetationDays,
			FloweringDays:   tl.FloweringDays,
		}
	}
	return out
}
