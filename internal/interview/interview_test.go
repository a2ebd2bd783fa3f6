package interview

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudflex/assistant/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_AllCategories(t *testing.T) {
	p := Profile{
		SkillCategories: map[string][]string{
			scoring.CategoryFrontend:  {"react", "typescript"},
			scoring.CategoryBackend:   {"node.js"},
			scoring.CategoryDatabases: {"postgresql"},
			scoring.CategoryCloud:     {"aws", "docker"},
			scoring.CategoryTools:     {"git"},
		},
		ExperienceLevel: scoring.LevelSenior,
		ProjectCount:    6,
	}

	qs := Generate(p)

	require.Len(t, qs, 9)
	assert.Equal(t, "Frontend Development", qs[0].Category)
	assert.Contains(t, qs[0].Question, "react, typescript")
	assert.Equal(t, "Backend Architecture", qs[1].Category)
	assert.Equal(t, "Database Management", qs[2].Category)
	assert.Equal(t, "DevOps & Cloud", qs[3].Category)
	assert.Contains(t, qs[3].Question, "aws, docker")
	assert.Equal(t, "Leadership", qs[4].Category)
	assert.Equal(t, "Problem Solving", qs[5].Category)
	assert.Equal(t, "Project Management", qs[6].Category)
	assert.Equal(t, "Continuous Learning", qs[8].Category)

	for i, q := range qs {
		assert.Equal(t, i+1, q.ID)
		assert.NotEmpty(t, q.ExpectedAnswer)
	}
}

func TestGenerate_Minimal(t *testing.T) {
	qs := Generate(Profile{})

	require.Len(t, qs, 3)
	assert.Equal(t, "Problem Solving", qs[0].Category)
	assert.Equal(t, "Adaptability", qs[1].Category)
}

func TestGenerate_BoundsAndUniqueness(t *testing.T) {
	profiles := []Profile{
		{},
		{ExperienceLevel: scoring.LevelSenior, ProjectCount: 10},
		{SkillCategories: map[string][]string{scoring.CategoryCloud: {"aws"}}, ProjectCount: 3},
		ProfileFromAnalysis(scoring.Analyze("senior react node.js mongodb aws project project project project")),
	}

	for _, p := range profiles {
		qs := Generate(p)
		assert.LessOrEqual(t, len(qs), MaxQuestions)

		seen := map[string]bool{}
		for _, q := range qs {
			if seen[q.Category] {
				t.Errorf("duplicate category %q", q.Category)
			}
			seen[q.Category] = true
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p := ProfileFromAnalysis(scoring.Analyze("Junior developer with Python, Django and Docker"))
	assert.Equal(t, Generate(p), Generate(p))
}

func TestGenerate_ProjectThreshold(t *testing.T) {
	hasPM := func(qs []Question) bool {
		for _, q := range qs {
			if q.Category == "Project Management" {
				return true
			}
		}
		return false
	}
	assert.False(t, hasPM(Generate(Profile{ProjectCount: 3})))
	assert.True(t, hasPM(Generate(Profile{ProjectCount: 4})))
}

func TestFallback(t *testing.T) {
	qs := Fallback()
	require.Len(t, qs, 5)
	assert.Equal(t, "Introduction", qs[0].Category)
	assert.Equal(t, 5, qs[4].ID)

	qs[0].Question = "mutated"
	assert.NotEqual(t, "mutated", Fallback()[0].Question)
}

func TestScoreAnswer(t *testing.T) {
	tests := []struct {
		answer string
		want   int
	}{
		{"ok", 20},
		{"I would profile first", 2*21 + 5*4},
		{strings.Repeat("word ", 30), 100},
	}
	for _, tt := range tests {
		got, err := ScoreAnswer(tt.answer)
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("ScoreAnswer(%q) = %d, want %d", tt.answer, got, tt.want)
		}
	}

	_, err := ScoreAnswer("   ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}

func TestSession_Flow(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StageUpload, s.Stage())

	_, err := s.SubmitAnswer("too early")
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))

	qs := Generate(Profile{})
	require.NoError(t, s.Start(scoring.Analyze(""), qs, false))
	assert.Equal(t, StageInterview, s.Stage())
	assert.Error(t, s.Start(scoring.Analyze(""), qs, false))

	snap := s.Snapshot()
	require.NotNil(t, snap.Current)
	assert.Equal(t, 1, snap.Current.ID)

	a, err := s.SubmitAnswer("ok")
	require.NoError(t, err)
	assert.Equal(t, 1, a.QuestionID)
	assert.Equal(t, 20, a.Score)

	_, err = s.SubmitAnswer("")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	_, err = s.SubmitAnswer("I would profile first")
	require.NoError(t, err)
	_, err = s.SubmitAnswer("ok!")
	require.NoError(t, err)

	assert.Equal(t, StageCompleted, s.Stage())
	// (20 + 62 + 20) / 3 = 34
	assert.Equal(t, 34, s.OverallScore())
	assert.Nil(t, s.Snapshot().Current)

	_, err = s.SubmitAnswer("more")
	assert.True(t, errors.As(err, &stageErr))
}

func TestSession_OverallScoreRounds(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Start(scoring.Analysis{}, Fallback(), true))
	assert.Equal(t, 0, s.OverallScore())

	_, err := s.SubmitAnswer("ok")
	require.NoError(t, err)
	_, err = s.SubmitAnswer("okay")
	require.NoError(t, err)
	// mean of 20 and 20
	assert.Equal(t, 20, s.OverallScore())
	assert.True(t, s.Snapshot().Fallback)
}

func TestManager(t *testing.T) {
	m := NewManager(time.Minute, 1)

	s, err := m.Create()
	require.NoError(t, err)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = m.Create()
	assert.ErrorIs(t, err, ErrTooManyInterviews)

	assert.Equal(t, 1, m.Sweep(time.Now().Add(2*time.Minute)))
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestPrepare(t *testing.T) {
	a, qs, fallback := Prepare("   \n ")
	assert.True(t, fallback)
	assert.Equal(t, 70, a.Score.Overall)
	assert.Len(t, qs, 5)

	a, qs, fallback = Prepare("Senior engineer. Built React dashboards and Node.js services on AWS.")
	assert.False(t, fallback)
	assert.Equal(t, scoring.LevelSenior, a.ExperienceLevel)
	require.NotEmpty(t, qs)
	assert.Equal(t, "Frontend Development", qs[0].Category)
}
