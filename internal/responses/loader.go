// Package responses renders the assistant's reply templates.
// Templates are stored as JSON files, embedded at compile time and parsed
// with text/template on first use.
package responses

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/cloudflex/assistant/internal/knowledge"
)

//go:embed *.json
var templateFiles embed.FS

// DefaultFile holds the chatbot replies.
const DefaultFile = "chatbot.json"

// cache stores parsed template files to avoid repeated parsing
var (
	cache   = make(map[string]map[string]*template.Template)
	cacheMu sync.RWMutex
)

var funcs = template.FuncMap{
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
	"faq": func(t *knowledge.Tables, topic string) *knowledge.FAQEntry {
		if e, ok := t.FindFAQ(topic); ok {
			return &e
		}
		return nil
	},
}

// Render executes the template stored under key in DefaultFile.
func Render(key string, data any) (string, error) {
	return RenderFile(DefaultFile, key, data)
}

// RenderFile executes the template stored under key in filename.
func RenderFile(filename, key string, data any) (string, error) {
	templates, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	tmpl, exists := templates[key]
	if !exists {
		return "", fmt.Errorf("response key %q not found in %s", key, filename)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render response %q: %w", key, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// MustRender is Render that panics on error. Rule closures use it because a
// broken embedded template is a build defect, not a runtime condition.
func MustRender(key string, data any) string {
	out, err := Render(key, data)
	if err != nil {
		panic(fmt.Sprintf("failed to render response: %v", err))
	}
	return out
}

// loadFile loads, parses and caches a template file.
func loadFile(filename string) (map[string]*template.Template, error) {
	cacheMu.RLock()
	if templates, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return templates, nil
	}
	cacheMu.RUnlock()

	data, err := templateFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read response file %s: %w", filename, err)
	}

	var sources map[string]string
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse response file %s: %w", filename, err)
	}

	templates := make(map[string]*template.Template, len(sources))
	for key, src := range sources {
		tmpl, err := template.New(key).Funcs(funcs).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse response %q in %s: %w", key, filename, err)
		}
		templates[key] = tmpl
	}

	cacheMu.Lock()
	cache[filename] = templates
	cacheMu.Unlock()

	return templates, nil
}

// ClearCache clears the template cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]*template.Template)
	cacheMu.Unlock()
}

// List returns all template keys in filename, sorted.
func List(filename string) ([]string, error) {
	templates, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
