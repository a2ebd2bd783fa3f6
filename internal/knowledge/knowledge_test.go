package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudflex/assistant/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "CloudFlex IT Solutions", tables.Company.Name)
	assert.Equal(t, "336-281-2871", tables.Contact.Phone)
	assert.Len(t, tables.Services, 6)
	assert.Len(t, tables.Jobs, 6)
	assert.Len(t, tables.FAQEntries, 8)
	assert.Len(t, tables.Immigration.Process, 5)
	assert.Empty(t, tables.Validate())
}

func TestDefault_SameInstance(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same tables on every call")
	}
}

func TestJobTitles(t *testing.T) {
	titles := MustLoad().JobTitles()
	want := []string{"Java Developer", "DevOps Engineer", "Data Scientist", "Cloud Architect", "React Developer", "Cybersecurity Specialist"}
	assert.Equal(t, want, titles)
}

func TestAccessorsReturnCopies(t *testing.T) {
	tables := MustLoad()

	jobs := tables.ListJobs()
	jobs[0].Title = "changed"
	assert.Equal(t, "Java Developer", tables.Jobs[0].Title)

	faq := tables.FAQ()
	faq[0].Answer = ""
	assert.NotEmpty(t, tables.FAQEntries[0].Answer)
}

func TestRemoteJobs(t *testing.T) {
	for _, j := range MustLoad().RemoteJobs() {
		if !j.Remote {
			t.Errorf("RemoteJobs returned non-remote job %s", j.ID)
		}
	}
}

func TestFindService(t *testing.T) {
	tables := MustLoad()

	s, ok := tables.FindService("cloud & devops services")
	require.True(t, ok)
	assert.Equal(t, "Cloud & DevOps Services", s.Name)

	s, ok = tables.FindService("staffing")
	require.True(t, ok)
	assert.Equal(t, "IT Talent Staffing", s.Name)

	_, ok = tables.FindService("  ")
	assert.False(t, ok)
}

func TestFindVisa(t *testing.T) {
	tables := MustLoad()

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"h1b", "H1B", true},
		{"OPT", "OPT/STEM OPT", true},
		{"stem opt", "OPT/STEM OPT", true},
		{"Green Card", "Green Card", true},
		{"E2", "", false},
	}
	for _, tt := range tests {
		v, ok := tables.FindVisa(tt.in)
		if ok != tt.ok || v.Type != tt.want {
			t.Errorf("FindVisa(%q) = %q, %v; want %q, %v", tt.in, v.Type, ok, tt.want, tt.ok)
		}
	}
}

func TestNews_Limit(t *testing.T) {
	tables := MustLoad()

	all := tables.News(0)
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].PublishedAt, all[i].PublishedAt)
	}
	assert.Len(t, tables.News(2), 2)
}

func TestValidate_UnknownCourse(t *testing.T) {
	tables := &Tables{
		Courses:       []Course{{ID: "rag-systems"}},
		LearningPaths: []LearningPath{{Name: "Bootcamp", Courses: []string{"rag-systems", "missing"}}},
		FAQEntries:    []FAQEntry{{Question: "q", Answer: "a"}},
	}

	warnings := tables.Validate()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "missing")
}

func TestParse_SchemaViolation(t *testing.T) {
	_, err := Parse("broken.json", []byte(`{"company": {"name": "x"}}`))
	require.Error(t, err)

	var ve *schemas.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestLoadFile(t *testing.T) {
	data, err := dataFiles.ReadFile(dataPath)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "override.json")
	override := strings.Replace(string(data), "336-281-2871", "555-0100", 1)
	require.NoError(t, os.WriteFile(path, []byte(override), 0644))

	tables, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", tables.Contact.Phone)
}
