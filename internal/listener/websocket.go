package listener

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebsocketListener serves browser clients. Each websocket connection is
// adapted to the same line-oriented io.ReadWriter the other listeners hand
// to the connection manager: one inbound message is one command line, and
// each outbound write becomes one text message.
type WebsocketListener struct {
	port uint16
	cm   *ConnectionManager

	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, cm *ConnectionManager) *WebsocketListener {
	return &WebsocketListener{
		port: port,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The game has its own login; browser origin is not a trust boundary here.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws, err := l.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.ErrorContext(r.Context(), "upgrading websocket", "remote", r.RemoteAddr, "error", err)
			return
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer ws.Close()
			l.cm.AcceptConnection(connCtx, newWsReadWriter(ws))
		}()
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", l.port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutting down websocket listener", "error", err)
		}
		cancelConns()
	}()

	slog.InfoContext(ctx, "listening for websocket", "port", l.port)

	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving websocket on port %d: %w", l.port, err)
	}

	wg.Wait()
	return nil
}

// wsReadWriter adapts a websocket connection to the line protocol the
// session loop expects.
type wsReadWriter struct {
	ws  *websocket.Conn
	buf bytes.Buffer

	writeMu sync.Mutex
}

func newWsReadWriter(ws *websocket.Conn) io.ReadWriter {
	return &wsReadWriter{ws: ws}
}

func (w *wsReadWriter) Read(p []byte) (int, error) {
	for w.buf.Len() == 0 {
		msgType, data, err := w.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		w.buf.Write(bytes.TrimRight(data, "\r\n"))
		w.buf.WriteByte('\n')
	}
	return w.buf.Read(p)
}

func (w *wsReadWriter) Write(p []byte) (int, error) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	if err := w.ws.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
