// Package knowledge holds the static company, service, job and immigration tables
// the assistant answers from. Tables are loaded once and never mutated.
package knowledge

// Company describes CloudFlex itself.
type Company struct {
	Name        string   `json:"name"`
	Tagline     string   `json:"tagline,omitempty"`
	Founded     string   `json:"founded,omitempty"`
	Mission     string   `json:"mission"`
	Values      []string `json:"values,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Industries  []string `json:"industries"`
	Location    string   `json:"location,omitempty"`
	GlobalReach bool     `json:"global_reach"`
}

// Contact is the public contact card.
type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	HREmail string `json:"hr_email"`
	Address string `json:"address"`
	Website string `json:"website,omitempty"`
	Hours   string `json:"hours,omitempty"`
}

// Service is one offering from the services table.
type Service struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features,omitempty"`
	Benefits    []string `json:"benefits,omitempty"`
	Pricing     string   `json:"pricing,omitempty"`
}

// Job is an open position.
type Job struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Level        string   `json:"level"`
	Location     string   `json:"location,omitempty"`
	Type         string   `json:"type,omitempty"`
	Remote       bool     `json:"remote"`
	Requirements []string `json:"requirements,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

// FAQEntry is a question/answer pair.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// VisaType describes one supported visa category.
type VisaType struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Duration    string `json:"duration,omitempty"`
}

// Immigration groups visa types with the support process steps.
type Immigration struct {
	VisaTypes []VisaType `json:"visa_types"`
	Process   []string   `json:"process"`
}

// Capability is a technical capability area.
type Capability struct {
	Area         string   `json:"area"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	Outcomes     []string `json:"outcomes,omitempty"`
}

// PricingTier is an engagement tier (starter, growth, enterprise).
type PricingTier struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	Pricing     string   `json:"pricing,omitempty"`
}

// DeliveryPhase is one step of the delivery process.
type DeliveryPhase struct {
	Phase        string   `json:"phase"`
	Description  string   `json:"description"`
	Deliverables []string `json:"deliverables,omitempty"`
}

// Course is an AI training course.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Level       string   `json:"level,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	Price       string   `json:"price,omitempty"`
}

// LearningPath bundles courses by ID.
type LearningPath struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Courses       []string `json:"courses"`
	EstimatedTime string   `json:"estimated_time,omitempty"`
	Certification bool     `json:"certification"`
}

// NewsItem is an immigration news entry.
type NewsItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	PublishedAt string `json:"published_at"`
	SourceURL   string `json:"source_url,omitempty"`
}

// Tables is the full knowledge set. Treat it as read-only; use the accessor
// methods, which return copies.
type Tables struct {
	Company         Company         `json:"company"`
	Contact         Contact         `json:"contact"`
	Services        []Service       `json:"services"`
	Jobs            []Job           `json:"jobs"`
	FAQEntries      []FAQEntry      `json:"faq"`
	Immigration     Immigration     `json:"immigration"`
	Capabilities    []Capability    `json:"capabilities,omitempty"`
	PricingTiers    []PricingTier   `json:"pricing_tiers,omitempty"`
	DeliveryProcess []DeliveryPhase `json:"delivery_process,omitempty"`
	Courses         []Course        `json:"courses,omitempty"`
	LearningPaths   []LearningPath  `json:"learning_paths,omitempty"`
	NewsItems       []NewsItem      `json:"news,omitempty"`
}
