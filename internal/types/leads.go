package types

import (
	"github.com/go-playground/validator/v10"
)

// ContactRequest is the "Contact Us" form.
type ContactRequest struct {
	FullName          string `json:"fullName" validate:"required,max=120"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Company           string `json:"company,omitempty" validate:"omitempty,max=120"`
	Position          string `json:"position,omitempty" validate:"omitempty,max=120"`
	Experience        string `json:"experience,omitempty" validate:"omitempty,max=60"`
	InterestedService string `json:"interestedService,omitempty" validate:"omitempty,max=120"`
	Message           string `json:"message" validate:"required,max=5000"`
}

// JobApplicationRequest is the job application form submitted for an open position.
type JobApplicationRequest struct {
	JobID           string `json:"jobId,omitempty" validate:"omitempty,max=64"`
	FirstName       string `json:"firstName" validate:"required,max=60"`
	LastName        string `json:"lastName" validate:"required,max=60"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,max=32"`
	Experience      string `json:"experience,omitempty" validate:"omitempty,max=60"`
	CurrentLocation string `json:"currentLocation,omitempty" validate:"omitempty,max=120"`
	VisaStatus      string `json:"visaStatus,omitempty" validate:"omitempty,max=60"`
	ExpectedSalary  string `json:"expectedSalary,omitempty" validate:"omitempty,max=60"`
	AvailableDate   string `json:"availableDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LinkedInURL     string `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
	CoverLetter     string `json:"coverLetter,omitempty" validate:"omitempty,max=10000"`
}

// ResumeReviewRequest is the free resume review form.
type ResumeReviewRequest struct {
	FullName       string `json:"fullName" validate:"required,max=120"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone,omitempty" validate:"omitempty,max=32"`
	TargetRole     string `json:"targetRole,omitempty" validate:"omitempty,max=120"`
	Experience     string `json:"experience,omitempty" validate:"omitempty,max=60"`
	AdditionalInfo string `json:"additionalInfo,omitempty" validate:"omitempty,max=5000"`
}

// Validate validates the ContactRequest using the validator.
func (r *ContactRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the JobApplicationRequest using the validator.
func (r *JobApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ResumeReviewRequest using the validator.
func (r *ResumeReviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ContactName returns the name and email a lead is filed under.
func (r *ContactRequest) ContactName() (string, string) { return r.FullName, r.Email }

// ContactName returns the name and email a lead is filed under.
func (r *JobApplicationRequest) ContactName() (string, string) {
	return r.FirstName + " " + r.LastName, r.Email
}

// ContactName returns the name and email a lead is filed under.
func (r *ResumeReviewRequest) ContactName() (string, string) { return r.FullName, r.Email }
