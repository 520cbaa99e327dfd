package host

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bgrins/speedometer-artifact-workloads/internal/protocol"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WebsocketListener accepts workload pages that dial the host over a
// websocket.
type WebsocketListener struct {
	server   *http.Server
	listener net.Listener
	upgrader websocket.Upgrader
	conns    chan *websocket.Conn
	log      *logrus.Logger
}

// ListenWebsocket starts listening on addr, for example "127.0.0.1:0".
func ListenWebsocket(addr string, log *logrus.Logger) (*WebsocketListener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on '%s': %w", addr, err)
	}

	l := &WebsocketListener{
		listener: listener,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Pages post to their parent without origin restriction.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(chan *websocket.Conn),
		log:   log,
	}
	l.server = &http.Server{Handler: l}

	go func() {
		if err := l.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Websocket listener stopped")
		}
	}()

	return l, nil
}

// URL is the address pages should pass as their --parent.
func (l *WebsocketListener) URL() string {
	return "ws://" + l.listener.Addr().String() + "/"
}

func (l *WebsocketListener) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.log.WithError(err).Warn("Failed to upgrade websocket connection")
		return
	}

	l.log.Debugf("Workload page connected from %s", r.RemoteAddr)
	select {
	case l.conns <- conn:
	case <-r.Context().Done():
		conn.Close()
	}
}

// Accept waits for the next page to connect.
func (l *WebsocketListener) Accept(ctx context.Context) (*WebsocketSession, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for workload page to connect: %w", ctx.Err())
	case conn := <-l.conns:
		return newWebsocketSession(conn), nil
	}
}

func (l *WebsocketListener) Close() error {
	return l.server.Close()
}

// WebsocketSession is one connected page.
type WebsocketSession struct {
	conn    *websocket.Conn
	reports chan Received
	writeMu sync.Mutex
}

func newWebsocketSession(conn *websocket.Conn) *WebsocketSession {
	s := &WebsocketSession{
		conn:    conn,
		reports: make(chan Received, 64),
	}

	go s.readReports()
	return s
}

func (s *WebsocketSession) readReports() {
	defer close(s.reports)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		report, err := protocol.DecodeReport(data)
		s.reports <- Received{Report: report, Err: err, At: time.Now()}
	}
}

func (s *WebsocketSession) Send(c protocol.Control) error {
	data, err := protocol.EncodeControl(c)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *WebsocketSession) Reports() <-chan Received {
	return s.reports
}

func (s *WebsocketSession) Close() error {
	s.writeMu.Lock()
	_ = s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.writeMu.Unlock()

	return s.conn.Close()
}
