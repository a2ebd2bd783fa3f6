// Package chat implements in-memory conversation sessions with a delayed,
// cancellable bot reply. Sessions are never persisted.
package chat

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/cloudflex/assistant/internal/chatbot"
	"github.com/google/uuid"
)

var (
	// ErrReplyPending is returned when a message is submitted while the bot is still composing.
	ErrReplyPending = errors.New("bot reply is pending")
	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("session is closed")
)

// State is the conversation state.
type State int

const (
	Idle State = iota
	AwaitingBotReply
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingBotReply:
		return "awaiting_bot_reply"
	default:
		return "unknown"
	}
}

// MarshalText lets State serialize as its name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Message is one entry in the transcript. Messages are never modified after
// they are appended.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	IsFromBot bool      `json:"is_from_bot"`
	Timestamp time.Time `json:"timestamp"`
}

// Responder produces bot replies.
type Responder interface {
	Respond(input string) chatbot.Reply
	Greeting() string
}

// Options tunes reply timing.
type Options struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	// Rand returns a value in [0, 1). Defaults to math/rand/v2.
	Rand func() float64
	Now  func() time.Time
}

// DefaultOptions returns the standard 1-2 second typing delay.
func DefaultOptions() Options {
	return Options{MinDelay: time.Second, MaxDelay: 2 * time.Second}
}

func (o Options) withDefaults() Options {
	if o.Rand == nil {
		o.Rand = rand.Float64
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.MaxDelay < o.MinDelay {
		o.MaxDelay = o.MinDelay
	}
	return o
}

// delay draws uniformly from [MinDelay, MaxDelay).
func (o Options) delay() time.Duration {
	span := o.MaxDelay - o.MinDelay
	if span <= 0 {
		return o.MinDelay
	}
	return o.MinDelay + time.Duration(o.Rand()*float64(span))
}

const subscriberBuffer = 32

// Session is a single conversation. It is safe for concurrent use.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	responder Responder
	opts      Options

	mu         sync.Mutex
	messages   []Message
	state      State
	closed     bool
	timer      *time.Timer
	pending    uint64
	idle       chan struct{}
	subs       []chan Message
	lastActive time.Time
	stop       func() bool
}

// NewSession creates a session seeded with the greeting. The session closes
// itself when ctx is cancelled.
func NewSession(ctx context.Context, responder Responder, opts Options) *Session {
	opts = opts.withDefaults()
	now := opts.Now()

	s := &Session{
		ID:         uuid.New(),
		CreatedAt:  now,
		responder:  responder,
		opts:       opts,
		state:      Idle,
		lastActive: now,
	}
	s.messages = append(s.messages, s.newMessage(responder.Greeting(), true))
	// An already cancelled ctx runs Close at once on another goroutine.
	s.mu.Lock()
	s.stop = context.AfterFunc(ctx, s.Close)
	s.mu.Unlock()
	return s
}

func (s *Session) newMessage(text string, fromBot bool) Message {
	return Message{ID: uuid.New(), Text: text, IsFromBot: fromBot, Timestamp: s.opts.Now()}
}

// Submit appends a user message and schedules the bot reply.
// Whitespace-only text is ignored and returns (nil, nil).
func (s *Session) Submit(ctx context.Context, text string) (*Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.state == AwaitingBotReply {
		return nil, ErrReplyPending
	}

	msg := s.newMessage(text, false)
	s.appendLocked(msg)
	s.state = AwaitingBotReply
	s.idle = make(chan struct{})
	s.pending++
	seq := s.pending
	s.timer = time.AfterFunc(s.opts.delay(), func() { s.reply(seq, text) })

	return &msg, nil
}

func (s *Session) reply(seq uint64, text string) {
	answer := s.responder.Respond(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || seq != s.pending || s.state != AwaitingBotReply {
		return
	}
	s.appendLocked(s.newMessage(answer.Text, true))
	s.state = Idle
	s.timer = nil
	close(s.idle)
}

func (s *Session) appendLocked(msg Message) {
	s.messages = append(s.messages, msg)
	s.lastActive = s.opts.Now()
	for _, ch := range s.subs {
		select {
		case ch <- msg:
		default:
			log.Printf("[chat] session %s: subscriber is slow, dropping message %s", s.ID, msg.ID)
		}
	}
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// State returns the current conversation state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// LastActive returns the time of the last appended message.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Subscribe returns a channel receiving every message appended after the
// call. The channel is closed when the session closes.
func (s *Session) Subscribe() <-chan Message {
	ch := make(chan Message, subscriberBuffer)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch
	}
	s.subs = append(s.subs, ch)
	return ch
}

// Unsubscribe detaches ch. It is a no-op for unknown channels.
func (s *Session) Unsubscribe(ch <-chan Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub == ch {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Wait blocks until no reply is pending, the session closes or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state == Idle {
		s.mu.Unlock()
		return nil
	}
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		if s.Closed() {
			return ErrSessionClosed
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels any pending reply and releases subscribers. It is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.state == AwaitingBotReply {
		close(s.idle)
	}
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
	if s.stop != nil {
		s.stop()
	}
}
