package responses

import (
	"testing"

	"github.com/cloudflex/assistant/internal/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AllKeys(t *testing.T) {
	ClearCache()
	tables := knowledge.MustLoad()

	keys, err := List(DefaultFile)
	require.NoError(t, err)
	require.NotEmpty(t, keys)

	for _, key := range keys {
		out, err := Render(key, tables)
		require.NoError(t, err, key)
		assert.NotEmpty(t, out, key)
		assert.NotContains(t, out, "<no value>", key)
	}
}

func TestRender_JobListsTitles(t *testing.T) {
	ClearCache()

	out, err := Render("job", knowledge.MustLoad())
	require.NoError(t, err)
	assert.Contains(t, out, "Java Developer")
	assert.Contains(t, out, "Cybersecurity Specialist")
}

func TestRender_Contact(t *testing.T) {
	out := MustRender("contact", knowledge.MustLoad())
	assert.Contains(t, out, "336-281-2871")
	assert.Contains(t, out, "hr@cloudflexit.com")
	assert.Contains(t, out, "Charlotte, NC 28262")
}

func TestRender_VisaNumbersSteps(t *testing.T) {
	out := MustRender("visa", knowledge.MustLoad())
	assert.Contains(t, out, "H1B, L1, OPT/STEM OPT, Green Card")
	assert.Contains(t, out, "1. Initial consultation")
	assert.Contains(t, out, "5. Final approval")
}

func TestRender_FAQBacked(t *testing.T) {
	out := MustRender("fees", knowledge.MustLoad())
	assert.Contains(t, out, "completely free for candidates")
}

func TestRender_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Render("nonexistent-key", knowledge.MustLoad())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRenderFile_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := RenderFile("nonexistent.json", "job", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read response file")
}

func TestMustRender_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustRender("nonexistent-key", knowledge.MustLoad())
	})
}
