package interview

import (
	"errors"
	"strings"

	"github.com/cloudflex/assistant/internal/scoring"
)

// ErrEmptyAnswer is returned for blank answers.
var ErrEmptyAnswer = errors.New("please provide an answer before proceeding")

// Profile is what the generator needs from a resume analysis.
type Profile struct {
	SkillCategories map[string][]string
	ExperienceLevel string
	ProjectCount    int
}

// ProfileFromAnalysis extracts a Profile from a resume analysis.
func ProfileFromAnalysis(a scoring.Analysis) Profile {
	return Profile{
		SkillCategories: a.SkillCategories,
		ExperienceLevel: a.ExperienceLevel,
		ProjectCount:    a.ProjectCount,
	}
}

// Generate builds the interview for p. The result is deterministic, holds at
// most MaxQuestions questions and never repeats a category.
func Generate(p Profile) []Question {
	var qs []Question

	for _, t := range skillTemplates {
		if skills := p.SkillCategories[t.category]; len(skills) > 0 {
			qs = append(qs, t.question(skills))
		}
	}
	if p.ExperienceLevel == scoring.LevelSenior {
		qs = append(qs, leadershipQuestion)
	}
	qs = append(qs, problemSolvingQuestion)
	if p.ProjectCount > 3 {
		qs = append(qs, projectManagementQuestion)
	}
	qs = append(qs, behavioralQuestions...)

	return number(dedupe(qs))
}

// Fallback returns the generic interview used when a resume cannot be analyzed.
func Fallback() []Question {
	return number(append([]Question(nil), fallbackQuestions...))
}

// ScoreAnswer grades an answer by length only: min(100, max(20, 2*chars + 5*words)).
func ScoreAnswer(answer string) (int, error) {
	if strings.TrimSpace(answer) == "" {
		return 0, ErrEmptyAnswer
	}
	score := 2*len([]rune(answer)) + 5*len(strings.Split(answer, " "))
	return min(100, max(20, score)), nil
}

func dedupe(qs []Question) []Question {
	seen := make(map[string]bool, len(qs))
	out := qs[:0]
	for _, q := range qs {
		if seen[q.Category] {
			continue
		}
		seen[q.Category] = true
		out = append(out, q)
	}
	return out
}

func number(qs []Question) []Question {
	if len(qs) > MaxQuestions {
		qs = qs[:MaxQuestions]
	}
	for i := range qs {
		qs[i].ID = i + 1
	}
	return qs
}

// Prepare analyzes resume text and builds its interview. Text without a
// single word gets the basic analysis and the generic questions, reported
// by the fallback result.
func Prepare(text string) (analysis scoring.Analysis, questions []Question, fallback bool) {
	if len(strings.Fields(text)) == 0 {
		return scoring.Basic(text), Fallback(), true
	}
	analysis = scoring.Analyze(text)
	return analysis, Generate(ProfileFromAnalysis(analysis)), false
}
