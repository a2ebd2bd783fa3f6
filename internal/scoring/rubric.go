// Package scoring grades resume text with deterministic keyword heuristics.
// Every list and weight lives in a Rubric so variants differ in data only.
package scoring

import (
	"fmt"
	"regexp"
)

// Category is a named group of skill keywords.
type Category struct {
	Name     string
	Keywords []string
}

// ExperienceTier maps seniority keywords to an experience sub-score.
// A tier with no triggers matches any text.
type ExperienceTier struct {
	Level    string
	Triggers []string
	Score    int
	Years    int
}

// Weights are the overall-score weights in percent. They must sum to 100.
type Weights struct {
	Skills     int
	Experience int
	Formatting int
	Keywords   int
	Projects   int
}

func (w Weights) sum() int {
	return w.Skills + w.Experience + w.Formatting + w.Keywords + w.Projects
}

// Rubric holds every keyword list and constant the scorer uses.
type Rubric struct {
	SkillCategories []Category
	// ExperienceTiers are checked in order; the first match wins.
	ExperienceTiers []ExperienceTier
	SectionHeaders  []string
	Quantifiable    *regexp.Regexp
	ActionKeywords  []string
	ProjectKeywords []string
	Certifications  []string
	// LongResumeWords is the word count above which formatting gets the full length credit.
	LongResumeWords int
	Weights         Weights
}

// Validate checks that the rubric can produce scores.
func (r Rubric) Validate() error {
	if r.Weights.sum() != 100 {
		return fmt.Errorf("rubric weights must sum to 100, got %d", r.Weights.sum())
	}
	if len(r.ExperienceTiers) == 0 {
		return fmt.Errorf("rubric needs at least one experience tier")
	}
	if len(r.ExperienceTiers[len(r.ExperienceTiers)-1].Triggers) != 0 {
		return fmt.Errorf("last experience tier must be a catch-all with no triggers")
	}
	if r.Quantifiable == nil {
		return fmt.Errorf("rubric needs a quantifiable-result pattern")
	}
	return nil
}

// Skill category names used by the default rubric.
const (
	CategoryFrontend  = "frontend"
	CategoryBackend   = "backend"
	CategoryDatabases = "databases"
	CategoryCloud     = "cloud"
	CategoryLanguages = "languages"
	CategoryMobile    = "mobile"
	CategoryTools     = "tools"
)

// Experience levels used by the default rubric.
const (
	LevelSenior = "senior"
	LevelMid    = "mid-level"
	LevelJunior = "junior"
	LevelEntry  = "entry-level"
)

// DefaultRubric returns the standard rubric.
func DefaultRubric() Rubric {
	return Rubric{
		SkillCategories: []Category{
			{CategoryFrontend, []string{"react", "vue", "angular", "javascript", "typescript", "html", "css", "sass", "tailwind", "bootstrap", "next.js", "nuxt.js"}},
			{CategoryBackend, []string{"node.js", "express", "django", "flask", "spring", "laravel", "ruby on rails", "asp.net", "fastapi"}},
			{CategoryDatabases, []string{"mongodb", "postgresql", "mysql", "redis", "elasticsearch", "dynamodb", "firebase", "sql"}},
			{CategoryCloud, []string{"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins", "ci/cd"}},
			{CategoryLanguages, []string{"python", "java", "c++", "c#", "go", "rust", "php", "ruby", "swift", "kotlin"}},
			{CategoryMobile, []string{"react native", "flutter", "ios", "android", "swift", "kotlin", "xamarin"}},
			{CategoryTools, []string{"git", "github", "gitlab", "jira", "slack", "figma", "photoshop", "postman"}},
		},
		ExperienceTiers: []ExperienceTier{
			{Level: LevelSenior, Triggers: []string{"senior", "lead", "principal"}, Score: 95, Years: 5},
			{Level: LevelMid, Triggers: []string{"mid-level", "intermediate"}, Score: 75, Years: 3},
			{Level: LevelJunior, Triggers: []string{"junior"}, Score: 65, Years: 1},
			{Level: LevelEntry, Score: 50, Years: 0},
		},
		SectionHeaders: []string{"experience", "education", "skills"},
		Quantifiable:   regexp.MustCompile(`(?i)\d+%|\d+\+|\d+ years|\$\d+`),
		ActionKeywords: []string{
			"developed", "implemented", "optimized", "scaled", "automated", "architected", "deployed", "managed",
			"agile", "scrum", "ci/cd", "api", "microservices", "database", "testing",
			"led", "mentored", "collaborated", "presented", "coordinated",
		},
		ProjectKeywords: []string{"project", "developed", "built", "created", "implemented", "designed"},
		Certifications:  []string{"certified", "certification", "aws certified", "microsoft certified", "google cloud", "oracle certified"},
		LongResumeWords: 100,
		Weights:         Weights{Skills: 25, Experience: 20, Formatting: 20, Keywords: 20, Projects: 15},
	}
}
