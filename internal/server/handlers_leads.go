package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/cloudflex/assistant/internal/db"
	"github.com/cloudflex/assistant/internal/types"
	"github.com/google/uuid"
)

// leadForm is a validated lead-capture request.
type leadForm interface {
	ContactName() (name, email string)
}

// LeadCreatedResponse acknowledges a stored lead.
type LeadCreatedResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

func (s *Server) handleContactLead(w http.ResponseWriter, r *http.Request) {
	var req types.ContactRequest
	s.saveLead(w, r, db.LeadContact, &req,
		"Thank you for contacting us! We'll get back to you within 24 hours.")
}

func (s *Server) handleApplicationLead(w http.ResponseWriter, r *http.Request) {
	var req types.JobApplicationRequest
	s.saveLead(w, r, db.LeadApplication, &req,
		"Application submitted successfully! Our recruitment team will contact you soon.")
}

func (s *Server) handleResumeReviewLead(w http.ResponseWriter, r *http.Request) {
	var req types.ResumeReviewRequest
	s.saveLead(w, r, db.LeadResumeReview, &req,
		"Resume review request submitted! Our experts will review your resume and get back to you within 48 hours.")
}

// saveLead decodes and validates form into req, then stores it as a lead of kind.
func (s *Server) saveLead(w http.ResponseWriter, r *http.Request, kind db.LeadKind, req leadForm, ack string) {
	if s.store == nil {
		s.errorFrom(w, &ErrStoreUnavailable{})
		return
	}
	if !s.decodeJSON(w, r, req) {
		return
	}

	if kind == db.LeadApplication {
		app := req.(*types.JobApplicationRequest)
		if app.JobID != "" {
			if _, ok := s.tables.FindJob(app.JobID); !ok {
				s.errorFrom(w, &ErrValidation{Field: "JobID", Message: "unknown job"})
				return
			}
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		s.errorFrom(w, fmt.Errorf("failed to encode lead: %w", err))
		return
	}

	name, email := req.ContactName()
	lead := &db.Lead{Kind: kind, Name: name, Email: email, Payload: payload}
	if err := s.store.SaveLead(r.Context(), lead); err != nil {
		s.errorFrom(w, err)
		return
	}

	log.Printf("[leads] stored %s lead %s", kind, lead.ID)
	s.jsonResponse(w, http.StatusCreated, LeadCreatedResponse{ID: lead.ID, Message: ack})
}

// handleListLeads lists stored leads; ?kind= filters and ?limit= caps the count.
func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFrom(w, &ErrStoreUnavailable{})
		return
	}

	kind := db.LeadKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "Unknown lead kind")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	leads, err := s.store.ListLeads(r.Context(), kind, limit)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"leads": leads, "count": len(leads)})
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFrom(w, &ErrStoreUnavailable{})
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid lead ID")
		return
	}

	lead, err := s.store.GetLead(r.Context(), id)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if lead == nil {
		s.errorResponse(w, http.StatusNotFound, "Lead not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, lead)
}
