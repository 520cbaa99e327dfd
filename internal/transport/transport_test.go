package transport

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bgrins/speedometer-artifact-workloads/internal/protocol"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamConn(t *testing.T) {
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	conn := NewStreamConn(inR, outW)

	received := make(chan string, 4)
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- conn.Listen(context.Background(), func(data []byte) {
			received <- string(data)
		})
	}()

	_, err := io.WriteString(inW, "{\"type\":\"metadata\"}\n\n{\"type\":\"run\"}\n")
	require.NoError(t, err)
	assert.Equal(t, `{"type":"metadata"}`, <-received)
	assert.Equal(t, `{"type":"run"}`, <-received)

	go func() {
		_ = conn.PostMessage(protocol.TestReport{Name: "A"})
		_ = conn.PostMessage(protocol.DoneReport{})
	}()
	reader := bufio.NewReader(outR)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"test","name":"A"}`, strings.TrimSpace(line))
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"done"}`, strings.TrimSpace(line))

	require.NoError(t, inW.Close())
	assert.NoError(t, <-listenErr)
}

func TestStreamConnCancel(t *testing.T) {
	inR, _ := io.Pipe()
	conn := NewStreamConn(inR, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- conn.Listen(ctx, func([]byte) {})
	}()
	cancel()

	select {
	case err := <-listenErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("listen did not return after cancel")
	}
}

func TestWebsocketConn(t *testing.T) {
	upgrader := websocket.Upgrader{}
	fromPage := make(chan string, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()

		_ = c.WriteMessage(websocket.TextMessage, []byte(`{"type":"run"}`))
		_ = c.WriteMessage(websocket.BinaryMessage, []byte(`ignored`))
		_ = c.WriteMessage(websocket.TextMessage, []byte(`{"type":"metadata"}`))

		for {
			_, data, err := c.ReadMessage()
			if err != nil {
				return
			}
			fromPage <- string(data)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	conn, err := Open(ctx, "ws"+strings.TrimPrefix(server.URL, "http"))
	require.NoError(t, err)

	received := make(chan string, 4)
	listenCtx, cancel := context.WithCancel(ctx)
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- conn.Listen(listenCtx, func(data []byte) { received <- string(data) })
	}()

	assert.Equal(t, `{"type":"run"}`, <-received)
	assert.Equal(t, `{"type":"metadata"}`, <-received)

	require.NoError(t, conn.PostMessage(protocol.TestsReport{Names: []string{"A"}}))
	assert.JSONEq(t, `{"type":"tests","tests":["A"]}`, <-fromPage)

	cancel()
	assert.ErrorIs(t, <-listenErr, context.Canceled)
	_ = conn.Close()
}

func TestOpen(t *testing.T) {
	conn, err := Open(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, conn)

	conn, err = Open(context.Background(), ParentStdio)
	require.NoError(t, err)
	assert.IsType(t, &StreamConn{}, conn)

	_, err = Open(context.Background(), "carrier-pigeon://coop")
	assert.ErrorContains(t, err, "unsupported parent")
}
