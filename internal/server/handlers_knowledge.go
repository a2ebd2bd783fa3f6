package server

import (
	"net/http"
	"strconv"

	"github.com/cloudflex/assistant/internal/knowledge"
)

// CompanyResponse is the company profile with contact details.
type CompanyResponse struct {
	Company knowledge.Company `json:"company"`
	Contact knowledge.Contact `json:"contact"`
}

// PricingResponse describes the consulting offer.
type PricingResponse struct {
	Capabilities    []knowledge.Capability    `json:"capabilities"`
	PricingTiers    []knowledge.PricingTier   `json:"pricing_tiers"`
	DeliveryProcess []knowledge.DeliveryPhase `json:"delivery_process"`
}

// TrainingResponse lists courses and learning paths.
type TrainingResponse struct {
	Courses       []knowledge.Course       `json:"courses"`
	LearningPaths []knowledge.LearningPath `json:"learning_paths"`
}

func (s *Server) handleCompany(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, CompanyResponse{Company: s.tables.Company, Contact: s.tables.Contact})
}

// handleListJobs lists open positions; ?remote=true keeps remote-friendly ones.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := s.tables.ListJobs()
	if v := r.URL.Query().Get("remote"); v != "" {
		remote, err := strconv.ParseBool(v)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "remote must be true or false")
			return
		}
		filtered := jobs[:0]
		for _, j := range jobs {
			if j.Remote == remote {
				filtered = append(filtered, j)
			}
		}
		jobs = filtered
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": nonNilJobs(jobs)})
}

func nonNilJobs(jobs []knowledge.Job) []knowledge.Job {
	if jobs == nil {
		return []knowledge.Job{}
	}
	return jobs
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.tables.FindJob(r.PathValue("id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleListServices lists services; ?name= looks one up by name.
func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		svc, ok := s.tables.FindService(name)
		if !ok {
			s.errorResponse(w, http.StatusNotFound, "Service not found")
			return
		}
		s.jsonResponse(w, http.StatusOK, svc)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"services": s.tables.ListServices()})
}

// handleFAQ lists FAQ entries; ?topic= returns the first matching entry.
func (s *Server) handleFAQ(w http.ResponseWriter, r *http.Request) {
	if topic := r.URL.Query().Get("topic"); topic != "" {
		entry, ok := s.tables.FindFAQ(topic)
		if !ok {
			s.errorResponse(w, http.StatusNotFound, "No FAQ entry for that topic")
			return
		}
		s.jsonResponse(w, http.StatusOK, entry)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"faq": s.tables.FAQ()})
}

// handleVisas lists visa types and the process; ?type= looks one up.
func (s *Server) handleVisas(w http.ResponseWriter, r *http.Request) {
	if visaType := r.URL.Query().Get("type"); visaType != "" {
		visa, ok := s.tables.FindVisa(visaType)
		if !ok {
			s.errorResponse(w, http.StatusNotFound, "Visa type not found")
			return
		}
		s.jsonResponse(w, http.StatusOK, visa)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.tables.Immigration)
}

// handleNews returns news newest first; ?limit= caps the count.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"news": s.tables.News(limit)})
}

func (s *Server) handlePricing(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, PricingResponse{
		Capabilities:    s.tables.Capabilities,
		PricingTiers:    s.tables.PricingTiers,
		DeliveryProcess: s.tables.DeliveryProcess,
	})
}

func (s *Server) handleTraining(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, TrainingResponse{
		Courses:       s.tables.Courses,
		LearningPaths: s.tables.LearningPaths,
	})
}
