// Package chatbot wires the knowledge tables, the keyword matcher and the
// response templates into the CloudFlex assistant.
package chatbot

import (
	"github.com/cloudflex/assistant/internal/knowledge"
	"github.com/cloudflex/assistant/internal/matcher"
	"github.com/cloudflex/assistant/internal/responses"
)

// Rule priorities. Gaps leave room for new rules without renumbering.
const (
	PriorityJob          = 10
	PriorityRemote       = 20
	PriorityVisa         = 30
	PriorityResume       = 40
	PriorityApply        = 50
	PriorityFees         = 60
	PriorityContact      = 70
	PriorityHello        = 80
	PriorityThank        = 90
	PriorityService      = 100
	PriorityIndustries   = 110
	PriorityPricing      = 120
	PrioritySecurity     = 130
	PriorityScalability  = 140
	PriorityConsultation = 150
	PriorityAbout        = 160
)

func rendered(key string) func(*knowledge.Tables) string {
	return func(t *knowledge.Tables) string {
		return responses.MustRender(key, t)
	}
}

// DefaultRules returns the assistant's rule table.
func DefaultRules() matcher.RuleSet {
	return matcher.NewRuleSet(
		matcher.Rule{Name: "job", Priority: PriorityJob, Triggers: []string{"job", "career", "position", "opening"}, Respond: rendered("job")},
		matcher.Rule{Name: "remote", Priority: PriorityRemote, Triggers: []string{"remote", "work from home"}, Respond: rendered("remote")},
		matcher.Rule{Name: "visa", Priority: PriorityVisa, Triggers: []string{"visa", "immigration", "h1b", "green card", "sponsorship"}, Respond: rendered("visa")},
		matcher.Rule{Name: "resume", Priority: PriorityResume, Triggers: []string{"resume", "cv"}, Respond: rendered("resume")},
		matcher.Rule{Name: "apply", Priority: PriorityApply, Triggers: []string{"apply", "application"}, Respond: rendered("apply")},
		matcher.Rule{Name: "fees", Priority: PriorityFees, Triggers: []string{"fee", "charge"}, Respond: rendered("fees")},
		matcher.Rule{Name: "contact", Priority: PriorityContact, Triggers: []string{"contact", "phone", "email"}, Respond: rendered("contact")},
		matcher.Rule{Name: "hello", Priority: PriorityHello, Triggers: []string{"hello", "hi", "hey"}, Respond: rendered("hello")},
		matcher.Rule{Name: "thank", Priority: PriorityThank, Triggers: []string{"thank", "thanks"}, Respond: rendered("thank")},
		matcher.Rule{Name: "service", Priority: PriorityService, Triggers: []string{"service", "what do you do"}, Respond: rendered("service")},
		matcher.Rule{Name: "industries", Priority: PriorityIndustries, Triggers: []string{"industr", "sector"}, Respond: rendered("industries")},
		matcher.Rule{Name: "pricing", Priority: PriorityPricing, Triggers: []string{"pricing", "price", "cost", "quote", "tier"}, Respond: rendered("pricing")},
		matcher.Rule{Name: "security", Priority: PrioritySecurity, Triggers: []string{"security", "compliance", "gdpr", "soc2"}, Respond: rendered("security")},
		matcher.Rule{Name: "scalability", Priority: PriorityScalability, Triggers: []string{"scalab", "uptime", "availability"}, Respond: rendered("scalability")},
		matcher.Rule{Name: "consultation", Priority: PriorityConsultation, Triggers: []string{"consult"}, Respond: rendered("consultation")},
		matcher.Rule{Name: "about", Priority: PriorityAbout, Triggers: []string{"about", "company", "who are you", "mission"}, Respond: rendered("about")},
	)
}
