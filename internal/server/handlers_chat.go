package server

import (
	"net/http"
	"time"

	"github.com/cloudflex/assistant/internal/chat"
	"github.com/cloudflex/assistant/internal/types"
	"github.com/google/uuid"
)

const keepAliveInterval = 15 * time.Second

// ChatView is the JSON form of a chat session.
type ChatView struct {
	ID        uuid.UUID      `json:"id"`
	State     chat.State     `json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	Messages  []chat.Message `json:"messages"`
}

// PostMessageResponse acknowledges an accepted visitor message.
type PostMessageResponse struct {
	Message chat.Message `json:"message"`
	State   chat.State   `json:"state"`
}

func chatView(sess *chat.Session) ChatView {
	return ChatView{
		ID:        sess.ID,
		State:     sess.State(),
		CreatedAt: sess.CreatedAt,
		Messages:  sess.Messages(),
	}
}

// chatSession resolves the {id} path value, writing the error response on failure.
func (s *Server) chatSession(w http.ResponseWriter, r *http.Request) (*chat.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return nil, false
	}
	sess, err := s.chats.Get(id)
	if err != nil {
		s.errorFrom(w, err)
		return nil, false
	}
	return sess, true
}

// handleCreateChat starts a session seeded with the greeting.
func (s *Server) handleCreateChat(w http.ResponseWriter, _ *http.Request) {
	sess, err := s.chats.Create()
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, chatView(sess))
}

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.chatSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, chatView(sess))
}

// handlePostMessage accepts a visitor message. The bot reply arrives later
// and is visible through GET or the event stream.
func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.chatSession(w, r)
	if !ok {
		return
	}

	var req types.ChatMessageRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	msg, err := sess.Submit(r.Context(), req.Text)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if msg == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	// A zero-delay reply may already have landed; report the state the message was accepted in.
	s.jsonResponse(w, http.StatusAccepted, PostMessageResponse{Message: *msg, State: chat.AwaitingBotReply})
}

// handleChatEvents streams the transcript as SSE "message" events: first the
// existing messages, then each new one. Last-Event-ID skips messages up to
// and including that ID.
func (s *Server) handleChatEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.chatSession(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Subscribe before reading the backlog so nothing falls in between.
	events := sess.Subscribe()
	defer sess.Unsubscribe(events)

	sent := make(map[uuid.UUID]bool)
	backlog := sess.Messages()
	if last := r.Header.Get("Last-Event-ID"); last != "" {
		for i, m := range backlog {
			if m.ID.String() == last {
				for _, seen := range backlog[:i+1] {
					sent[seen.ID] = true
				}
				break
			}
		}
	}

	for _, m := range backlog {
		if sent[m.ID] {
			continue
		}
		if err := sse.WriteEvent("message", m.ID.String(), m); err != nil {
			return
		}
		sent[m.ID] = true
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if err := sse.WriteKeepAlive(); err != nil {
				return
			}
		case m, open := <-events:
			if !open {
				sse.WriteClosed(sess.ID.String())
				return
			}
			if sent[m.ID] {
				continue
			}
			if err := sse.WriteEvent("message", m.ID.String(), m); err != nil {
				return
			}
			sent[m.ID] = true
		}
	}
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return
	}
	if err := s.chats.Delete(id); err != nil {
		s.errorFrom(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAnswer replies immediately without a session, for integrations.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req types.AnswerRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	reply := s.responder.Respond(req.Message)
	s.jsonResponse(w, http.StatusOK, types.AnswerResponse{
		Response: reply.Text,
		Rule:     reply.Rule,
		Trigger:  reply.Trigger,
		Matched:  reply.Matched,
	})
}
