package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LeadKind identifies which form produced a lead.
type LeadKind string

const (
	LeadContact      LeadKind = "contact"
	LeadApplication  LeadKind = "application"
	LeadResumeReview LeadKind = "resume_review"
)

// Valid reports whether k is a known kind.
func (k LeadKind) Valid() bool {
	switch k {
	case LeadContact, LeadApplication, LeadResumeReview:
		return true
	}
	return false
}

// Lead is a submitted website form. Payload holds the full form as JSON.
type Lead struct {
	ID        uuid.UUID       `json:"id"`
	Kind      LeadKind        `json:"kind"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// DefaultListLimit applies when ListLeads gets a non-positive limit.
const DefaultListLimit = 50

// MaxListLimit caps ListLeads.
const MaxListLimit = 500

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
