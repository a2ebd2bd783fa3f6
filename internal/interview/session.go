package interview

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cloudflex/assistant/internal/scoring"
	"github.com/google/uuid"
)

var (
	ErrInterviewNotFound = errors.New("interview not found")
	ErrTooManyInterviews = errors.New("too many active interviews")
)

// Stage is where the candidate is in the mock interview.
type Stage string

const (
	StageUpload    Stage = "upload"
	StageInterview Stage = "interview"
	StageCompleted Stage = "completed"
)

// StageError reports an operation attempted in the wrong stage.
type StageError struct {
	Op    string
	Stage Stage
}

func (e *StageError) Error() string {
	return fmt.Sprintf("cannot %s while interview is in stage %q", e.Op, e.Stage)
}

// Answer is a scored response to one question.
type Answer struct {
	QuestionID int       `json:"question_id"`
	Text       string    `json:"text"`
	Score      int       `json:"score"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	ID           uuid.UUID         `json:"id"`
	Stage        Stage             `json:"stage"`
	Fallback     bool              `json:"fallback"`
	Analysis     *scoring.Analysis `json:"analysis,omitempty"`
	Questions    []Question        `json:"questions"`
	Answers      []Answer          `json:"answers"`
	Current      *Question         `json:"current,omitempty"`
	OverallScore int               `json:"overall_score"`
}

// Session walks a candidate through one interview.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu        sync.Mutex
	stage     Stage
	fallback  bool
	analysis  *scoring.Analysis
	questions []Question
	answers   []Answer
	updatedAt time.Time
}

// NewSession returns a session in the upload stage.
func NewSession() *Session {
	now := time.Now()
	return &Session{ID: uuid.New(), CreatedAt: now, updatedAt: now, stage: StageUpload}
}

// Start moves the session from upload to interview. fallback marks an
// interview built from Fallback questions.
func (s *Session) Start(analysis scoring.Analysis, questions []Question, fallback bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageUpload {
		return &StageError{Op: "start", Stage: s.stage}
	}
	if len(questions) == 0 {
		return fmt.Errorf("interview needs at least one question")
	}
	s.analysis = &analysis
	s.questions = append([]Question(nil), questions...)
	s.fallback = fallback
	s.stage = StageInterview
	s.updatedAt = time.Now()
	return nil
}

// SubmitAnswer scores text as the answer to the current question and
// advances. The session completes after the last question.
func (s *Session) SubmitAnswer(text string) (Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != StageInterview {
		return Answer{}, &StageError{Op: "answer", Stage: s.stage}
	}
	score, err := ScoreAnswer(text)
	if err != nil {
		return Answer{}, err
	}

	q := s.questions[len(s.answers)]
	a := Answer{QuestionID: q.ID, Text: text, Score: score, AnsweredAt: time.Now()}
	s.answers = append(s.answers, a)
	if len(s.answers) == len(s.questions) {
		s.stage = StageCompleted
	}
	s.updatedAt = a.AnsweredAt
	return a, nil
}

// Stage returns the current stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// OverallScore is the rounded mean of answer scores, 0 with no answers.
func (s *Session) OverallScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overallLocked()
}

func (s *Session) overallLocked() int {
	if len(s.answers) == 0 {
		return 0
	}
	total := 0
	for _, a := range s.answers {
		total += a.Score
	}
	n := len(s.answers)
	return (2*total + n) / (2 * n)
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:           s.ID,
		Stage:        s.stage,
		Fallback:     s.fallback,
		Analysis:     s.analysis,
		Questions:    append([]Question{}, s.questions...),
		Answers:      append([]Answer{}, s.answers...),
		OverallScore: s.overallLocked(),
	}
	if s.stage == StageInterview {
		q := s.questions[len(s.answers)]
		snap.Current = &q
	}
	return snap
}

func (s *Session) lastUpdate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// Manager keeps interviews in memory.
type Manager struct {
	ttl time.Duration
	max int

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a manager. Zero ttl or max disables that bound.
func NewManager(ttl time.Duration, max int) *Manager {
	return &Manager{ttl: ttl, max: max, sessions: make(map[uuid.UUID]*Session)}
}

// Create registers a new session in the upload stage.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.max > 0 && len(m.sessions) >= m.max {
		m.sweepLocked(time.Now())
		if len(m.sessions) >= m.max {
			return nil, ErrTooManyInterviews
		}
	}
	s := NewSession()
	m.sessions[s.ID] = s
	return s, nil
}

// Get returns a session by ID.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrInterviewNotFound
	}
	return s, nil
}

// Len reports the number of live interviews.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Delete forgets a session.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Sweep drops sessions untouched for longer than the TTL.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked(now)
}

func (m *Manager) sweepLocked(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	n := 0
	for id, s := range m.sessions {
		if now.Sub(s.lastUpdate()) > m.ttl {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
