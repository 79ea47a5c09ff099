package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/growlog/internal/api"
	"github.com/dmitrijs2005/growlog/internal/common"
	"github.com/dmitrijs2005/growlog/internal/lifecycle"
)

func (s *HTTPServer) listPlants(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	plants, err := s.plants.List(r.Context(), userID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	now := s.now()
	out := make([]api.Plant, 0, len(plants))
	for _, p := range plants {
		out = append(out, toAPIPlant(p, now, false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) createPlant(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req api.CreatePlantRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	plant, err := s.plants.Create(r.Context(), userID, req.Input())
	if err != nil {
		if errors.Is(err, lifecycle.ErrMissingField) || errors.Is(err, lifecycle.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.internalError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "plant created", "plant_id", plant.ID, "phase", plant.Phase)
	writeJSON(w, http.StatusCreated, toAPIPlant(plant, s.now(), true))
}

func (s *HTTPServer) getPlant(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	plant, err := s.plants.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		s.plantError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAPIPlant(plant, s.now(), true))
}

func (s *HTTPServer) deletePlant(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	id := r.PathValue("id")

	if err := s.plants.Delete(r.Context(), userID, id); err != nil {
		s.plantError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "plant deleted", "plant_id", id)
	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "plant deleted"})
}

func (s *HTTPServer) summary(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	counts, err := s.plants.Summary(r.Context(), userID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	writeJSON(w, http.StatusOK, api.SummaryResponse{Total: total, Phases: counts})
}

// form describes the create form for ?phase=. Without a phase only the
// common fields are listed.
func (s *HTTPServer) form(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("phase")

	phase, ok := lifecycle.ParsePhase(raw)
	if raw != "" && !ok {
		writeError(w, http.StatusBadRequest, "unknown phase")
		return
	}

	writeJSON(w, http.StatusOK, api.FormResponse{Phase: phase, Fields: lifecycle.FormFields(phase)})
}

func (s *HTTPServer) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	// the body is optional
	var req api.PhotoUploadRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	up, err := s.plants.PhotoUploadURL(r.Context(), userID, r.PathValue("id"), req.ContentType)
	if err != nil {
		s.plantError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.PhotoUploadResponse{URL: up.URL, Key: up.Key, ExpiresAt: up.ExpiresAt})
}

// cancelPhoto releases an upload key that was never used: DELETE with ?key=.
func (s *HTTPServer) cancelPhoto(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	key := r.URL.Query().Get(api.QueryKey)
	if key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	if err := s.plants.CancelPhotoUpload(r.Context(), userID, r.PathValue("id"), key); err != nil {
		s.plantError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) downloadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	url, err := s.plants.PhotoDownloadURL(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		s.plantError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.PhotoURLResponse{URL: url})
}

func (s *HTTPServer) plantError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	s.internalError(w, r, err)
}
