package scoring

import "strings"

// Analysis is the full resume report.
type Analysis struct {
	SkillCategories   map[string][]string `json:"skill_categories"`
	Categories        []string            `json:"categories"`
	Skills            []string            `json:"skills"`
	ExperienceLevel   string              `json:"experience_level"`
	YearsOfExperience int                 `json:"years_of_experience"`
	ProjectCount      int                 `json:"project_count"`
	Certifications    []string            `json:"certifications"`
	Feedback          []string            `json:"feedback"`
	Strengths         []string            `json:"strengths"`
	Improvements      []string            `json:"improvements"`
	Score             ResumeScore         `json:"score"`
	Verdict           string              `json:"verdict"`
}

// Analyze scores text and explains the result. It never fails; empty text
// yields the baseline score.
func (s *Scorer) Analyze(text string) Analysis {
	f := s.extract(text)
	score := s.score(f)

	return Analysis{
		SkillCategories:   f.categories,
		Categories:        f.categoryOrder,
		Skills:            nonNil(f.skills),
		ExperienceLevel:   f.tier.Level,
		YearsOfExperience: f.tier.Years,
		ProjectCount:      f.projects,
		Certifications:    nonNil(f.certifications),
		Feedback:          feedback(f),
		Strengths:         strengths(f),
		Improvements:      improvements(f),
		Score:             score,
		Verdict:           Verdict(score.Overall),
	}
}

// Basic is the fixed analysis used when a resume yields no usable text.
func Basic(text string) Analysis {
	lower := strings.ToLower(text)
	skills := containsAny(lower, []string{"javascript", "python", "java", "react", "node.js"})
	if len(skills) == 0 {
		skills = []string{"programming"}
	}
	score := ResumeScore{Overall: 70, Skills: 65, Experience: 70, Formatting: 75, Keywords: 65}

	return Analysis{
		SkillCategories: map[string][]string{},
		Skills:          skills,
		ExperienceLevel: LevelMid,
		Certifications:  []string{},
		Feedback:        []string{"Resume shows basic technical competency with room for enhancement."},
		Strengths:       []string{"Technical foundation"},
		Improvements:    []string{"Add more specific project examples", "Include measurable achievements"},
		Score:           score,
		Verdict:         Verdict(score.Overall),
	}
}

// Verdict summarizes an overall score in one sentence.
func Verdict(overall int) string {
	switch {
	case overall >= 80:
		return "Excellent resume! Strong technical skills and experience evident."
	case overall >= 60:
		return "Good resume with room for improvement. Consider adding more technical keywords and quantifiable achievements."
	default:
		return "Resume needs enhancement. Focus on highlighting technical skills, measurable accomplishments, and relevant experience."
	}
}

func feedback(f features) []string {
	var out []string
	if len(f.categories) > 3 {
		out = append(out, "Strong technical skill diversity across multiple domains.")
	}
	if len(f.categories[CategoryCloud]) > 0 {
		out = append(out, "Cloud expertise is highly valuable in today's market.")
	}
	if f.projects > 5 {
		out = append(out, "Extensive project experience demonstrates hands-on capabilities.")
	}
	if f.tier.Level == LevelSenior {
		out = append(out, "Senior-level experience indicates leadership and mentoring capabilities.")
	}
	if len(out) == 0 {
		out = append(out, "Resume shows potential with room for technical skill enhancement.")
	}
	return out
}

func strengths(f features) []string {
	var out []string
	_, frontend := f.categories[CategoryFrontend]
	_, backend := f.categories[CategoryBackend]
	if frontend && backend {
		out = append(out, "Full-stack development capabilities")
	}
	if _, ok := f.categories[CategoryCloud]; ok {
		out = append(out, "Cloud infrastructure knowledge")
	}
	if f.projects > 3 {
		out = append(out, "Strong project delivery experience")
	}
	if f.tier.Level == LevelSenior {
		out = append(out, "Leadership and mentoring experience")
	}
	if len(out) == 0 {
		return []string{"Technical foundation", "Problem-solving abilities"}
	}
	return out
}

func improvements(f features) []string {
	out := []string{}
	if len(f.categories[CategoryCloud]) == 0 {
		out = append(out, "Consider adding cloud platform experience (AWS, Azure, GCP)")
	}
	if !strings.Contains(f.lower, "agile") && !strings.Contains(f.lower, "scrum") {
		out = append(out, "Include agile/scrum methodology experience")
	}
	if len(f.categories[CategoryTools]) < 2 {
		out = append(out, "Highlight more development tools and workflow experience")
	}
	if f.tier.Level == LevelEntry {
		out = append(out, "Consider adding personal projects or open-source contributions")
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
