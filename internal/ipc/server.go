package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/xde-mcp/zgsm-sub005/internal/host"
	"github.com/xde-mcp/zgsm-sub005/internal/vscode"
)

// attachSendBuffer is the per-attachment outbound channel size. A full
// buffer drops messages for that attachment; the relay is back-pressure
// free by contract.
const attachSendBuffer = 256

// ServerOptions configures the attach server.
type ServerOptions struct {
	Addr string
	// Authority, when set, requires a valid bearer token on attach.
	Authority *TokenAuthority
}

// Server exposes the host's relay over a local websocket endpoint.
// Multiple front-ends may attach; the first successful attach resolves the
// host's main webview view.
type Server struct {
	host     *host.Host
	opts     ServerOptions
	upgrader websocket.Upgrader

	mu          sync.Mutex
	listener    net.Listener
	httpServer  *http.Server
	attachments map[string]*attachment
	closed      bool
}

// attachment is one connected front-end, with its own write pump so a slow
// reader cannot block the relay.
type attachment struct {
	id     string
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
	once   sync.Once
	sub    vscode.Disposable
}

func (a *attachment) close() {
	a.once.Do(func() {
		close(a.done)
		a.sub.Dispose()
		a.conn.Close()
	})
}

// NewServer constructs an attach server for h.
func NewServer(h *host.Host, opts ServerOptions) *Server {
	return &Server{
		host:        h,
		opts:        opts,
		upgrader:    websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		attachments: make(map[string]*attachment),
	}
}

// Start binds the listen address and serves attach requests until Stop.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/attach", s.handleAttach)
	srv := &http.Server{Handler: mux}

	s.mu.Lock()
	s.listener = listener
	s.httpServer = srv
	s.mu.Unlock()

	slog.Info("attach endpoint listening", "addr", listener.Addr().String())
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the bound address, or empty before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop closes every attachment and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	attachments := make([]*attachment, 0, len(s.attachments))
	for _, a := range s.attachments {
		attachments = append(attachments, a)
	}
	s.attachments = make(map[string]*attachment)
	srv := s.httpServer
	s.mu.Unlock()

	for _, a := range attachments {
		a.close()
	}
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleAttach(w http.ResponseWriter, r *http.Request) {
	if s.opts.Authority != nil {
		token := r.URL.Query().Get("token")
		if token == "" {
			token = bearerToken(r)
		}
		if _, err := s.opts.Authority.Validate(token); err != nil {
			slog.Warn("attach rejected", "error", err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("attach upgrade failed", "error", err)
		return
	}

	a := &attachment{
		id:     uuid.NewString(),
		conn:   conn,
		sendCh: make(chan []byte, attachSendBuffer),
		done:   make(chan struct{}),
	}
	// Extension-bound of the relay toward this attachment; a full buffer
	// drops rather than blocks.
	a.sub = s.host.On(host.ChannelExtensionWebviewMessage, func(message json.RawMessage) {
		select {
		case a.sendCh <- message:
		case <-a.done:
		default:
			slog.Warn("attachment send buffer full, dropping message", "attachment", a.id)
		}
	})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		a.close()
		return
	}
	s.attachments[a.id] = a
	s.mu.Unlock()

	slog.Info("front-end attached", "attachment", a.id)
	if err := s.host.AttachUI(); err != nil {
		slog.Warn("attach aborted", "attachment", a.id, "error", err)
		s.detach(a)
		return
	}

	go a.writePump()
	go s.readLoop(a)
}

// readLoop relays front-end messages into the host until the connection
// drops.
func (s *Server) readLoop(a *attachment) {
	defer s.detach(a)
	for {
		_, data, err := a.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("attachment read ended", "attachment", a.id, "error", err)
			}
			return
		}
		s.host.Emit(host.ChannelWebviewMessage, data)
	}
}

func (a *attachment) writePump() {
	for {
		select {
		case data := <-a.sendCh:
			if err := a.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				a.close()
				return
			}
		case <-a.done:
			return
		}
	}
}

func (s *Server) detach(a *attachment) {
	a.close()
	s.mu.Lock()
	delete(s.attachments, a.id)
	s.mu.Unlock()
	slog.Info("front-end detached", "attachment", a.id)
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
