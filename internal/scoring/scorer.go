package scoring

import (
	"strings"
)

// ResumeScore holds sub-scores in [0,100] and their weighted overall.
type ResumeScore struct {
	Overall    int `json:"overall"`
	Skills     int `json:"skills"`
	Experience int `json:"experience"`
	Formatting int `json:"formatting"`
	Keywords   int `json:"keywords"`
	Projects   int `json:"projects"`
}

// Scorer applies a Rubric. It holds no mutable state and is safe for
// concurrent use.
type Scorer struct {
	rubric Rubric
}

// NewScorer returns a scorer for r. It panics if r is invalid.
func NewScorer(r Rubric) *Scorer {
	if err := r.Validate(); err != nil {
		panic(err)
	}
	return &Scorer{rubric: r}
}

var defaultScorer = NewScorer(DefaultRubric())

// Score grades text with the default rubric.
func Score(text string) ResumeScore {
	return defaultScorer.Score(text)
}

// Analyze runs the full analysis with the default rubric.
func Analyze(text string) Analysis {
	return defaultScorer.Analyze(text)
}

// features are the counts every sub-score is computed from.
type features struct {
	lower          string
	categories     map[string][]string
	categoryOrder  []string
	skills         []string
	tier           ExperienceTier
	words          int
	hasSection     bool
	hasQuantified  bool
	actionKeywords int
	projects       int
	certifications []string
}

func (s *Scorer) extract(text string) features {
	r := s.rubric
	lower := strings.ToLower(text)
	f := features{
		lower:      lower,
		categories: make(map[string][]string),
		words:      len(strings.Fields(text)),
	}

	for _, c := range r.SkillCategories {
		found := containsAny(lower, c.Keywords)
		if len(found) > 0 {
			f.categories[c.Name] = found
			f.categoryOrder = append(f.categoryOrder, c.Name)
			f.skills = append(f.skills, found...)
		}
	}

	for _, tier := range r.ExperienceTiers {
		if len(tier.Triggers) == 0 || len(containsAny(lower, tier.Triggers)) > 0 {
			f.tier = tier
			break
		}
	}

	f.hasSection = len(containsAny(lower, r.SectionHeaders)) > 0
	f.hasQuantified = r.Quantifiable.MatchString(text)
	f.actionKeywords = len(containsAny(lower, r.ActionKeywords))
	for _, kw := range r.ProjectKeywords {
		f.projects += strings.Count(lower, kw)
	}
	f.certifications = containsAny(lower, r.Certifications)
	return f
}

// Score computes the resume score. Identical text always yields an
// identical score.
func (s *Scorer) Score(text string) ResumeScore {
	return s.score(s.extract(text))
}

func (s *Scorer) score(f features) ResumeScore {
	r := s.rubric

	skills := clamp(15*len(f.categories) + 5*len(f.skills) + 30)
	experience := clamp(f.tier.Score)

	formatting := 20
	if f.words > r.LongResumeWords {
		formatting = 40
	}
	if f.hasSection {
		formatting += 30
	}
	if f.hasQuantified {
		formatting += 30
	}
	formatting = clamp(formatting)

	keywords := 8*f.actionKeywords + 10*len(f.certifications) + 20
	if f.hasQuantified {
		keywords += 10
	}
	keywords = clamp(keywords)

	projects := clamp(10*f.projects + 40)

	w := r.Weights
	weighted := skills*w.Skills + experience*w.Experience + formatting*w.Formatting +
		keywords*w.Keywords + projects*w.Projects

	return ResumeScore{
		// weights are percentages, so this rounds half up
		Overall:    clamp((weighted + 50) / 100),
		Skills:     skills,
		Experience: experience,
		Formatting: formatting,
		Keywords:   keywords,
		Projects:   projects,
	}
}

func containsAny(lower string, keywords []string) []string {
	var found []string
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
