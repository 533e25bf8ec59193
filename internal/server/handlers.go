package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/careerkit/cvforge/internal/joboffer"
	"github.com/careerkit/cvforge/internal/llm"
	"github.com/careerkit/cvforge/internal/pipeline"
	"github.com/careerkit/cvforge/internal/types"
)

var validate = validator.New()

// GenerateRequest represents the request body for /cvs/generate.
// The profile comes either from storage (profile_id) or inline; the
// job context either from a posting URL or inline.
type GenerateRequest struct {
	ProfileID  string            `json:"profile_id,omitempty" validate:"omitempty,uuid"`
	Profile    *types.RAGProfile `json:"profile,omitempty"`
	JobURL     string            `json:"job_url,omitempty" validate:"omitempty,url"`
	JobContext *types.JobContext `json:"job_context,omitempty"`

	Template                string `json:"template,omitempty"`
	MinScore                int    `json:"min_score,omitempty" validate:"gte=0,lte=100"`
	MaxExperiences          int    `json:"max_experiences,omitempty" validate:"gte=0"`
	MaxBulletsPerExperience int    `json:"max_bullets_per_experience,omitempty" validate:"gte=0"`
}

// GenerateResponse represents the response for /cvs/generate
type GenerateResponse struct {
	ID    string        `json:"id,omitempty"`
	CV    *types.CVData `json:"cv"`
	Level int           `json:"compression_level"`
	Fits  bool          `json:"fits"`
	Dense bool          `json:"dense"`
}

// handleGenerate runs the full generation pipeline for one request
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProfileID == "" && req.Profile == nil {
		s.errorResponse(w, http.StatusBadRequest, "either profile_id or profile is required")
		return
	}
	if req.JobURL == "" && req.JobContext == nil {
		s.errorResponse(w, http.StatusBadRequest, "either job_url or job_context is required")
		return
	}
	if s.llm == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "llm client not configured")
		return
	}

	profile := req.Profile
	job := req.JobContext

	// Profile load and posting fetch are independent
	g, ctx := errgroup.WithContext(r.Context())
	if req.ProfileID != "" {
		profileID := uuid.MustParse(req.ProfileID)
		g.Go(func() error {
			stored, err := s.db.GetProfile(ctx, profileID)
			if err != nil {
				return err
			}
			if stored == nil {
				return &notFoundError{resource: "profile", id: req.ProfileID}
			}
			profile = stored
			return nil
		})
	}
	if req.JobURL != "" {
		g.Go(func() error {
			fetched, err := joboffer.FromURL(ctx, req.JobURL, nil)
			if err != nil {
				return err
			}
			job = fetched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.errorResponse(w, statusFor(err), err.Error())
		return
	}

	envelope, err := llm.GenerateEnvelope(r.Context(), s.llm, profile, job)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "envelope generation failed: "+err.Error())
		return
	}

	opts := s.pipeline
	if req.Template != "" {
		opts.Template = req.Template
	}
	if req.MinScore > 0 {
		opts.MinScore = req.MinScore
	}
	if req.MaxExperiences > 0 {
		opts.MaxExperiences = req.MaxExperiences
	}
	if req.MaxBulletsPerExperience > 0 {
		opts.MaxBulletsPerExperience = req.MaxBulletsPerExperience
	}

	result, err := pipeline.Generate(envelope, profile, job, opts, s.log)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := GenerateResponse{
		CV:    result.CV,
		Level: result.Level,
		Fits:  result.Fits,
		Dense: result.Dense,
	}
	if req.ProfileID != "" {
		id, err := s.db.SaveCV(r.Context(), uuid.MustParse(req.ProfileID), result.CV)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.ID = id.String()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleCreateProfile stores a raw profile
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile types.RAGProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	id, err := s.db.SaveProfile(r.Context(), &profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleGetProfile returns a stored profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	profile, err := s.db.GetProfile(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "profile not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleListCVs returns the stored CVs for a profile, newest first
func (s *Server) handleListCVs(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	records, err := s.db.ListCVs(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, records)
}

// handleGetCV returns a stored CV
func (s *Server) handleGetCV(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	record, err := s.db.GetCV(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "cv not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleDeleteCV removes a stored CV
func (s *Server) handleDeleteCV(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	existed, err := s.db.DeleteCV(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !existed {
		s.errorResponse(w, http.StatusNotFound, "cv not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth reports service health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses the {id} path segment as a UUID
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid id: "+err.Error())
		return uuid.Nil, false
	}
	return id, true
}
