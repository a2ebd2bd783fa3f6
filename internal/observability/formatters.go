// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/cloudflex/assistant/internal/chatbot"
	"github.com/cloudflex/assistant/internal/interview"
	"github.com/cloudflex/assistant/internal/matcher"
	"github.com/cloudflex/assistant/internal/scoring"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes up to limit items as bullets, then a "... and N more" line.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintAnalysis outputs the score breakdown and feedback for one resume.
func (p *Printer) PrintAnalysis(name string, a *scoring.Analysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:    %d/100  %s\n", a.Score.Overall, a.Verdict))
	sb.WriteString(fmt.Sprintf("Skills:     %d\n", a.Score.Skills))
	sb.WriteString(fmt.Sprintf("Experience: %d (%s", a.Score.Experience, a.ExperienceLevel))
	if a.YearsOfExperience > 0 {
		sb.WriteString(fmt.Sprintf(", %d yrs", a.YearsOfExperience))
	}
	sb.WriteString(")\n")
	sb.WriteString(fmt.Sprintf("Formatting: %d\n", a.Score.Formatting))
	sb.WriteString(fmt.Sprintf("Keywords:   %d\n", a.Score.Keywords))
	sb.WriteString(fmt.Sprintf("Projects:   %d (%d found)\n", a.Score.Projects, a.ProjectCount))
	sb.WriteString("\n")

	writeList(&sb, "Skills found", a.Skills, maxItemsToShow)
	writeList(&sb, "Certifications", a.Certifications, 3)
	writeList(&sb, "Strengths", a.Strengths, 3)
	writeList(&sb, "Improvements", a.Improvements, 3)

	p.printBox("RESUME ANALYSIS: "+name, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestions outputs the generated interview questions.
func (p *Printer) PrintQuestions(questions []interview.Question, fallback bool) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	if fallback {
		sb.WriteString("Resume unreadable; using general questions.\n\n")
	}
	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("Q%d [%s]\n", q.ID, q.Category))
		sb.WriteString(fmt.Sprintf("    %s\n", q.Question))
		if i < len(questions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("INTERVIEW QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReply outputs which rule answered a message and on which trigger.
func (p *Printer) PrintReply(input string, reply chatbot.Reply) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Input:   %s\n", input))
	if reply.Matched {
		sb.WriteString(fmt.Sprintf("Rule:    %s\n", reply.Rule))
		sb.WriteString(fmt.Sprintf("Trigger: %q", reply.Trigger))
	} else {
		sb.WriteString("Rule:    (fallback)")
	}

	p.printBox("MATCH", sb.String())
}

// PrintShadows outputs rule-table lint findings.
func (p *Printer) PrintShadows(shadows []matcher.Shadow) {
	if len(shadows) == 0 {
		p.printBox("RULE LINT", "No shadowed triggers")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d shadowed triggers:\n\n", len(shadows)))
	for _, s := range shadows {
		sb.WriteString(fmt.Sprintf("%s: %q\n", s.Rule, s.Trigger))
		sb.WriteString(fmt.Sprintf("    by %s: %q\n", s.ByRule, s.ByTrigger))
	}

	p.printBox("RULE LINT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs knowledge-table validation warnings.
func (p *Printer) PrintWarnings(title string, warnings []string) {
	if len(warnings) == 0 {
		p.printBox(title, "No warnings")
		return
	}

	var sb strings.Builder
	for _, w := range warnings {
		sb.WriteString(fmt.Sprintf("• %s\n", w))
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}
