package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noFlush hides the recorder's Flush method.
type noFlush struct{ http.ResponseWriter }

func TestSSEWriter_WriteEvent(t *testing.T) {
	w := httptest.NewRecorder()
	sse, err := NewSSEWriter(w)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent("message", "abc", map[string]string{"text": "hi"}))
	require.NoError(t, sse.WriteEvent("message", "", 1))
	require.NoError(t, sse.WriteKeepAlive())
	sse.WriteClosed("s-1")

	want := "id: abc\nevent: message\ndata: {\"text\":\"hi\"}\n\n" +
		"event: message\ndata: 1\n\n" +
		": keep-alive\n\n" +
		"event: closed\ndata: {\"session_id\":\"s-1\"}\n\n"
	assert.Equal(t, want, w.Body.String())
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.True(t, w.Flushed)
}

func TestSSEWriter_NeedsFlusher(t *testing.T) {
	_, err := NewSSEWriter(noFlush{httptest.NewRecorder()})
	assert.Error(t, err)
}
