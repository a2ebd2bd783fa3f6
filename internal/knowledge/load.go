package knowledge

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/cloudflex/assistant/internal/schemas"
)

//go:embed data/knowledge.json data/knowledge.schema.json
var dataFiles embed.FS

const (
	dataPath   = "data/knowledge.json"
	schemaPath = "data/knowledge.schema.json"
)

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Schema returns the embedded JSON Schema for knowledge documents.
func Schema() []byte {
	b, err := dataFiles.ReadFile(schemaPath)
	if err != nil {
		panic(fmt.Sprintf("knowledge schema missing from binary: %v", err))
	}
	return b
}

// Load parses and validates the embedded knowledge tables.
func Load() (*Tables, error) {
	data, err := dataFiles.ReadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded knowledge: %w", err)
	}
	return Parse("knowledge.json", data)
}

// LoadFile parses and validates a knowledge document from disk.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}
	return Parse(path, data)
}

// Parse validates data against the knowledge schema and decodes it.
func Parse(name string, data []byte) (*Tables, error) {
	if err := schemas.ValidateBytes(name, Schema(), data); err != nil {
		return nil, err
	}

	var t Tables
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge %s: %w", name, err)
	}
	return &t, nil
}

// MustLoad is Load that panics on error.
func MustLoad() *Tables {
	t, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load knowledge tables: %v", err))
	}
	return t
}

// Default returns the process-wide tables, loading them on first use.
// Soft-invariant warnings are logged once.
func Default() *Tables {
	defaultOnce.Do(func() {
		defaultTables = MustLoad()
		for _, w := range defaultTables.Validate() {
			log.Printf("[knowledge] warning: %s", w)
		}
	})
	return defaultTables
}

// Validate checks cross-table references. Violations are returned as
// warnings; they never make the tables unusable.
func (t *Tables) Validate() []string {
	var warnings []string

	courses := make(map[string]bool, len(t.Courses))
	for _, c := range t.Courses {
		courses[c.ID] = true
	}
	for _, p := range t.LearningPaths {
		for _, id := range p.Courses {
			if !courses[id] {
				warnings = append(warnings, fmt.Sprintf("learning path %q references unknown course %q", p.Name, id))
			}
		}
	}

	seen := make(map[string]bool, len(t.Jobs))
	for _, j := range t.Jobs {
		if seen[j.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate job id %q", j.ID))
		}
		seen[j.ID] = true
	}

	if len(t.FAQEntries) == 0 {
		warnings = append(warnings, "FAQ table is empty")
	}
	return warnings
}

// JobTitles returns the job titles in table order.
func (t *Tables) JobTitles() []string {
	titles := make([]string, len(t.Jobs))
	for i, j := range t.Jobs {
		titles[i] = j.Title
	}
	return titles
}

// ListJobs returns a copy of the job table.
func (t *Tables) ListJobs() []Job {
	return append([]Job(nil), t.Jobs...)
}

// RemoteJobs returns jobs that can be done remotely.
func (t *Tables) RemoteJobs() []Job {
	var out []Job
	for _, j := range t.Jobs {
		if j.Remote {
			out = append(out, j)
		}
	}
	return out
}

// FindJob looks a job up by ID.
func (t *Tables) FindJob(id string) (Job, bool) {
	for _, j := range t.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

// ListServices returns a copy of the services table.
func (t *Tables) ListServices() []Service {
	return append([]Service(nil), t.Services...)
}

// FindService matches a service by case-insensitive name or name fragment.
func (t *Tables) FindService(name string) (Service, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Service{}, false
	}
	for _, s := range t.Services {
		if strings.ToLower(s.Name) == needle {
			return s, true
		}
	}
	for _, s := range t.Services {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			return s, true
		}
	}
	return Service{}, false
}

// FindVisa looks up a visa type case-insensitively. "OPT" also matches
// "OPT/STEM OPT".
func (t *Tables) FindVisa(visaType string) (VisaType, bool) {
	needle := strings.ToLower(strings.TrimSpace(visaType))
	if needle == "" {
		return VisaType{}, false
	}
	for _, v := range t.Immigration.VisaTypes {
		name := strings.ToLower(v.Type)
		if name == needle {
			return v, true
		}
		for _, part := range strings.Split(name, "/") {
			if strings.TrimSpace(part) == needle {
				return v, true
			}
		}
	}
	return VisaType{}, false
}

// VisaTypes returns a copy of the visa table.
func (t *Tables) VisaTypes() []VisaType {
	return append([]VisaType(nil), t.Immigration.VisaTypes...)
}

// FAQ returns a copy of the FAQ entries.
func (t *Tables) FAQ() []FAQEntry {
	return append([]FAQEntry(nil), t.FAQEntries...)
}

// FindFAQ returns the first FAQ entry whose question contains topic.
func (t *Tables) FindFAQ(topic string) (FAQEntry, bool) {
	needle := strings.ToLower(topic)
	for _, f := range t.FAQEntries {
		if strings.Contains(strings.ToLower(f.Question), needle) {
			return f, true
		}
	}
	return FAQEntry{}, false
}

// News returns news items, newest first. limit <= 0 returns all of them.
func (t *Tables) News(limit int) []NewsItem {
	items := append([]NewsItem(nil), t.NewsItems...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt > items[j].PublishedAt
	})
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
