package types

import (
	"github.com/go-playground/validator/v10"
)

// ChatMessageRequest is a visitor message posted to a chat session.
// Blank text is accepted here and ignored by the session.
type ChatMessageRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

// AnswerRequest asks for a one-shot chatbot reply.
type AnswerRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// AnswerResponse is the one-shot reply with the rule that produced it.
type AnswerResponse struct {
	Response string `json:"response"`
	Rule     string `json:"rule,omitempty"`
	Trigger  string `json:"trigger,omitempty"`
	Matched  bool   `json:"matched"`
}

// ScoreRequest carries resume text pasted instead of uploaded.
type ScoreRequest struct {
	Text string `json:"text" validate:"required,max=200000"`
}

// InterviewAnswerRequest answers the current interview question.
type InterviewAnswerRequest struct {
	Answer string `json:"answer" validate:"max=20000"`
}

// Validate validates the ChatMessageRequest using the validator.
func (r *ChatMessageRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnswerRequest using the validator.
func (r *AnswerRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the InterviewAnswerRequest using the validator.
func (r *InterviewAnswerRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
