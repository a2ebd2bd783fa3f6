package server

import (
	"net/http"
	"testing"

	"github.com/cloudflex/assistant/internal/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledge_Jobs(t *testing.T) {
	s := newTestServer(t)

	all := decode[map[string][]knowledge.Job](t, do(t, s, http.MethodGet, "/knowledge/jobs", nil))
	assert.Len(t, all["jobs"], 6)

	remote := decode[map[string][]knowledge.Job](t, do(t, s, http.MethodGet, "/knowledge/jobs?remote=true", nil))
	assert.Len(t, remote["jobs"], 4)
	for _, j := range remote["jobs"] {
		assert.True(t, j.Remote, j.ID)
	}

	onsite := decode[map[string][]knowledge.Job](t, do(t, s, http.MethodGet, "/knowledge/jobs?remote=false", nil))
	assert.Len(t, onsite["jobs"], 2)

	// Filtering must not disturb the shared table.
	assert.Len(t, s.tables.ListJobs(), 6)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/knowledge/jobs?remote=maybe", nil).Code)
}

func TestKnowledge_GetJob(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/knowledge/jobs/devops-engineer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	job := decode[knowledge.Job](t, w)
	assert.Equal(t, "devops-engineer", job.ID)
	assert.True(t, job.Remote)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/knowledge/jobs/astronaut", nil).Code)
}

func TestKnowledge_Services(t *testing.T) {
	s := newTestServer(t)

	list := decode[map[string][]knowledge.Service](t, do(t, s, http.MethodGet, "/knowledge/services", nil))
	assert.Len(t, list["services"], 6)

	w := do(t, s, http.MethodGet, "/knowledge/services?name=data%20%26%20analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Data & Analytics", decode[knowledge.Service](t, w).Name)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/knowledge/services?name=catering", nil).Code)
}

func TestKnowledge_FAQ(t *testing.T) {
	s := newTestServer(t)

	list := decode[map[string][]knowledge.FAQEntry](t, do(t, s, http.MethodGet, "/knowledge/faq", nil))
	assert.NotEmpty(t, list["faq"])

	w := do(t, s, http.MethodGet, "/knowledge/faq?topic=remote", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Do you provide remote job opportunities?", decode[knowledge.FAQEntry](t, w).Question)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/knowledge/faq?topic=zebras", nil).Code)
}

func TestKnowledge_Visas(t *testing.T) {
	s := newTestServer(t)

	imm := decode[knowledge.Immigration](t, do(t, s, http.MethodGet, "/knowledge/visas", nil))
	assert.Len(t, imm.VisaTypes, 4)
	assert.NotEmpty(t, imm.Process)

	w := do(t, s, http.MethodGet, "/knowledge/visas?type=h1b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "H1B", decode[knowledge.VisaType](t, w).Type)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/knowledge/visas?type=tourist", nil).Code)
}

func TestKnowledge_News(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/knowledge/news?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	news := decode[map[string][]knowledge.NewsItem](t, w)
	require.Len(t, news["news"], 1)
	assert.Equal(t, "New $100,000 Fee Required for H-1B Petitions Starting Sept 21, 2025", news["news"][0].Title)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/knowledge/news?limit=-1", nil).Code)
}

func TestKnowledge_CompanyPricingTraining(t *testing.T) {
	s := newTestServer(t)

	company := decode[CompanyResponse](t, do(t, s, http.MethodGet, "/knowledge/company", nil))
	assert.Equal(t, s.tables.Company.Name, company.Company.Name)
	assert.NotEmpty(t, company.Contact.Email)

	pricing := decode[PricingResponse](t, do(t, s, http.MethodGet, "/knowledge/pricing", nil))
	assert.Len(t, pricing.PricingTiers, len(s.tables.PricingTiers))
	assert.Len(t, pricing.DeliveryProcess, len(s.tables.DeliveryProcess))

	training := decode[TrainingResponse](t, do(t, s, http.MethodGet, "/knowledge/training", nil))
	assert.Len(t, training.Courses, len(s.tables.Courses))
}
