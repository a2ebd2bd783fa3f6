package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messageJSON struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsFromBot bool   `json:"is_from_bot"`
}

type chatJSON struct {
	ID       string        `json:"id"`
	State    string        `json:"state"`
	Messages []messageJSON `json:"messages"`
}

func createChat(t *testing.T, s *Server) chatJSON {
	t.Helper()
	w := do(t, s, http.MethodPost, "/chat/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	return decode[chatJSON](t, w)
}

func waitIdle(t *testing.T, s *Server, id string) {
	t.Helper()
	sess, err := s.chats.Get(uuid.MustParse(id))
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, sess.Wait(ctx))
}

func TestChat_CreateSeedsGreeting(t *testing.T) {
	s := newTestServer(t)

	c := createChat(t, s)
	assert.Equal(t, "idle", c.State)
	require.Len(t, c.Messages, 1)
	assert.True(t, c.Messages[0].IsFromBot)
	assert.Equal(t, s.responder.Greeting(), c.Messages[0].Text)
}

func TestChat_MessageAndReply(t *testing.T) {
	s := newTestServer(t)
	c := createChat(t, s)

	text := "Do you sponsor H1B visas?"
	w := do(t, s, http.MethodPost, "/chat/sessions/"+c.ID+"/messages", map[string]string{"text": text})
	require.Equal(t, http.StatusAccepted, w.Code)

	var posted struct {
		Message messageJSON `json:"message"`
		State   string      `json:"state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posted))
	assert.Equal(t, text, posted.Message.Text)
	assert.False(t, posted.Message.IsFromBot)
	assert.Equal(t, "awaiting_bot_reply", posted.State)

	waitIdle(t, s, c.ID)

	w = do(t, s, http.MethodGet, "/chat/sessions/"+c.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[chatJSON](t, w)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "idle", got.State)
	assert.True(t, got.Messages[2].IsFromBot)
	assert.Equal(t, s.responder.Respond(text).Text, got.Messages[2].Text)
}

func TestChat_BlankMessageIgnored(t *testing.T) {
	s := newTestServer(t)
	c := createChat(t, s)

	w := do(t, s, http.MethodPost, "/chat/sessions/"+c.ID+"/messages", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusNoContent, w.Code)

	got := decode[chatJSON](t, do(t, s, http.MethodGet, "/chat/sessions/"+c.ID, nil))
	assert.Len(t, got.Messages, 1)
}

func TestChat_ReplyPendingConflict(t *testing.T) {
	s := newTestServer(t, withReplyDelay(time.Hour))
	c := createChat(t, s)

	path := "/chat/sessions/" + c.ID + "/messages"
	require.Equal(t, http.StatusAccepted, do(t, s, http.MethodPost, path, map[string]string{"text": "hello"}).Code)

	w := do(t, s, http.MethodPost, path, map[string]string{"text": "anyone there?"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestChat_DeleteCancelsSession(t *testing.T) {
	s := newTestServer(t, withReplyDelay(time.Hour))
	c := createChat(t, s)
	require.Equal(t, http.StatusAccepted,
		do(t, s, http.MethodPost, "/chat/sessions/"+c.ID+"/messages", map[string]string{"text": "hello"}).Code)

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/chat/sessions/"+c.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/chat/sessions/"+c.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/chat/sessions/"+c.ID, nil).Code)
}

func TestChat_NotFoundAndBadID(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/chat/sessions/"+uuid.NewString(), nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/chat/sessions/not-a-uuid", nil).Code)
}

func TestChat_TooManySessions(t *testing.T) {
	s := newTestServer(t, func(cfg *Config) { cfg.Chat.MaxSessions = 1 })

	createChat(t, s)
	w := do(t, s, http.MethodPost, "/chat/sessions", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestChat_Answer(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/chat/answer", map[string]string{"message": "What are your consulting fees?"})
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Response string `json:"response"`
		Rule     string `json:"rule"`
		Matched  bool   `json:"matched"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Matched)
	assert.Equal(t, "fees", got.Rule)
	assert.NotEmpty(t, got.Response)

	w = do(t, s, http.MethodPost, "/chat/answer", map[string]string{"message": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error: Message - required")
}

func TestChat_EventStream(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	c := createChat(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/chat/sessions/"+c.ID+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan messageJSON, 8)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var m messageJSON
			if json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &m) == nil {
				events <- m
			}
		}
	}()

	next := func() messageJSON {
		select {
		case m, ok := <-events:
			require.True(t, ok, "stream ended early")
			return m
		case <-ctx.Done():
			t.Fatal("timed out waiting for event")
		}
		return messageJSON{}
	}

	greeting := next()
	assert.Equal(t, c.Messages[0].ID, greeting.ID)

	text := "tell me about pricing"
	require.Equal(t, http.StatusAccepted,
		do(t, s, http.MethodPost, "/chat/sessions/"+c.ID+"/messages", map[string]string{"text": text}).Code)

	user := next()
	assert.Equal(t, text, user.Text)
	bot := next()
	assert.True(t, bot.IsFromBot)
	assert.Equal(t, s.responder.Respond(text).Text, bot.Text)
}

func TestChat_EventStreamLastEventID(t *testing.T) {
	s := newTestServer(t)
	c := createChat(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/chat/sessions/"+c.ID+"/events", nil).WithContext(ctx)
	req.Header.Set("Last-Event-ID", c.Messages[0].ID)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		s.Handler().ServeHTTP(w, req)
		close(done)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	assert.NotContains(t, w.Body.String(), c.Messages[0].ID, "greeting was already seen")
}

func TestChat_EventStreamClosedSession(t *testing.T) {
	s := newTestServer(t)
	c := createChat(t, s)

	sess, err := s.chats.Get(uuid.MustParse(c.ID))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/chat/sessions/"+c.ID+"/events", nil)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		s.Handler().ServeHTTP(w, req)
		close(done)
	}()
	time.Sleep(50 * time.Millisecond)
	sess.Close()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not end when the session closed")
	}
	assert.Contains(t, w.Body.String(), "event: closed")
}
