package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/cloudflex/assistant/internal/ingestion"
	"github.com/cloudflex/assistant/internal/interview"
	"github.com/cloudflex/assistant/internal/scoring"
	"github.com/cloudflex/assistant/internal/types"
	"github.com/google/uuid"
)

// DocumentInfo describes the parsed upload without its text.
type DocumentInfo struct {
	Filename string         `json:"filename"`
	Kind     ingestion.Kind `json:"kind"`
	Words    int            `json:"words"`
}

// ScoreResponse is the result of POST /resumes/score.
type ScoreResponse struct {
	Document DocumentInfo     `json:"document"`
	Analysis scoring.Analysis `json:"analysis"`
}

// AnswerResponse is the result of POST /interviews/{id}/answers.
type AnswerResponse struct {
	Answer    interview.Answer   `json:"answer"`
	Interview interview.Snapshot `json:"interview"`
}

func documentInfo(doc *ingestion.Document) DocumentInfo {
	return DocumentInfo{Filename: doc.Filename, Kind: doc.Kind, Words: doc.Words}
}

// handleScoreResume scores an uploaded or pasted resume.
func (s *Server) handleScoreResume(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readResume(w, r)
	if errors.Is(err, errResponded) {
		return
	}
	if err != nil {
		log.Printf("[resume] score failed: %v", err)
		s.errorFrom(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ScoreResponse{
		Document: documentInfo(doc),
		Analysis: scoring.Analyze(doc.Text),
	})
}

// handleCreateInterview analyzes a resume and starts a mock interview. A file
// that passes the size and type checks but cannot be read still gets the
// generic interview.
func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readResume(w, r)
	if errors.Is(err, errResponded) {
		return
	}
	var extraction *ingestion.ExtractionError
	switch {
	case errors.As(err, &extraction):
		log.Printf("[interview] using fallback questions: %v", err)
		doc = &ingestion.Document{Filename: extraction.Filename, Kind: extraction.Kind}
	case err != nil:
		s.errorFrom(w, err)
		return
	}

	analysis, questions, fallback := interview.Prepare(doc.Text)

	sess, err := s.interviews.Create()
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if err := sess.Start(analysis, questions, fallback); err != nil {
		s.interviews.Delete(sess.ID)
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) interviewSession(w http.ResponseWriter, r *http.Request) (*interview.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid interview ID")
		return nil, false
	}
	sess, err := s.interviews.Get(id)
	if err != nil {
		s.errorFrom(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.interviewSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Snapshot())
}

// handleAnswerInterview scores the answer to the current question.
func (s *Server) handleAnswerInterview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.interviewSession(w, r)
	if !ok {
		return
	}

	var req types.InterviewAnswerRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	answer, err := sess.SubmitAnswer(req.Answer)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, AnswerResponse{Answer: answer, Interview: sess.Snapshot()})
}
