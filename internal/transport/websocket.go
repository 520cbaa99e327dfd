package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bgrins/speedometer-artifact-workloads/internal/protocol"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// WebsocketConn talks to a parent reachable over a websocket, one JSON text
// frame per message.
type WebsocketConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// DialWebsocket connects to a parent listening at url.
func DialWebsocket(ctx context.Context, url string) (*WebsocketConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to parent '%s': %w", url, err)
	}

	return NewWebsocketConn(conn), nil
}

func NewWebsocketConn(conn *websocket.Conn) *WebsocketConn {
	return &WebsocketConn{conn: conn}
}

func (c *WebsocketConn) PostMessage(r protocol.Report) error {
	data, err := protocol.EncodeReport(r)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *WebsocketConn) Listen(ctx context.Context, dispatch func([]byte)) error {
	stop := closeOnDone(ctx, c.conn)
	defer stop()

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read from parent: %w", err)
		}

		if msgType != websocket.TextMessage {
			continue
		}

		dispatch(data)
	}
}

func (c *WebsocketConn) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
	c.writeMu.Unlock()

	return c.conn.Close()
}
