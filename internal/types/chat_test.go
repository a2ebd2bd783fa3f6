//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatMessageRequest_BlankAllowed(t *testing.T) {
	r := ChatMessageRequest{Text: "   "}
	assert.NoError(t, r.Validate())

	r.Text = strings.Repeat("a", 2001)
	assert.Error(t, r.Validate())
}

func TestAnswerRequest_Validation(t *testing.T) {
	r := AnswerRequest{}
	assert.Equal(t, "Message:required", firstTag(t, r.Validate()))

	r.Message = "Do you sponsor visas?"
	assert.NoError(t, r.Validate())
}

func TestScoreRequest_Validation(t *testing.T) {
	r := ScoreRequest{}
	assert.Equal(t, "Text:required", firstTag(t, r.Validate()))
}

func TestAdminLoginRequest_Validation(t *testing.T) {
	r := AdminLoginRequest{Email: "admin@cloudflexit.com", Password: "secret"}
	assert.NoError(t, r.Validate())

	r.Email = "admin"
	assert.Equal(t, "Email:email", firstTag(t, r.Validate()))
}

func TestInterviewAnswerRequest_Validation(t *testing.T) {
	r := InterviewAnswerRequest{Answer: ""}
	assert.NoError(t, r.Validate(), "blank answers are rejected by the session, not the validator")
}
