package chatbot

import (
	"github.com/cloudflex/assistant/internal/knowledge"
	"github.com/cloudflex/assistant/internal/matcher"
	"github.com/cloudflex/assistant/internal/responses"
)

// Reply is the assistant's answer to one user message.
type Reply struct {
	Text    string `json:"text"`
	Rule    string `json:"rule,omitempty"`
	Trigger string `json:"trigger,omitempty"`
	Matched bool   `json:"matched"`
}

// Responder answers free text from a rule table.
type Responder struct {
	tables *knowledge.Tables
	rules  matcher.RuleSet
}

// NewResponder creates a responder. A nil tables uses knowledge.Default().
func NewResponder(tables *knowledge.Tables, rules matcher.RuleSet) *Responder {
	if tables == nil {
		tables = knowledge.Default()
	}
	return &Responder{tables: tables, rules: rules}
}

// NewDefaultResponder uses the default tables and rule table.
func NewDefaultResponder() *Responder {
	return NewResponder(nil, DefaultRules())
}

// Respond never fails: unmatched input gets the default reply.
func (r *Responder) Respond(input string) Reply {
	res, ok := matcher.Match(input, r.rules)
	if !ok || res.Rule.Respond == nil {
		return Reply{Text: responses.MustRender("default", r.tables)}
	}
	return Reply{
		Text:    res.Rule.Respond(r.tables),
		Rule:    res.Rule.Name,
		Trigger: res.Trigger,
		Matched: true,
	}
}

// Greeting is the first bot message of every conversation.
func (r *Responder) Greeting() string {
	return responses.MustRender("greeting", r.tables)
}

// Rules returns the responder's rule table.
func (r *Responder) Rules() matcher.RuleSet {
	return r.rules
}

// Tables returns the knowledge tables the responder answers from.
func (r *Responder) Tables() *knowledge.Tables {
	return r.tables
}
