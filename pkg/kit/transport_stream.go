package kit

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// maxMessageSize bounds one newline-delimited JSON-RPC message.
const maxMessageSize = 1 << 20

// StreamHandler serves MCP sessions as newline-delimited JSON-RPC over any
// byte stream (stdio, TCP connection).
type StreamHandler struct {
	mcpServer *server.MCPServer
	logger    *zerolog.Logger
}

// NewStreamHandler creates a session handler for srv. A nil logger discards.
func NewStreamHandler(srv *server.MCPServer, logger *zerolog.Logger) *StreamHandler {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	return &StreamHandler{mcpServer: srv, logger: logger}
}

// randomHex returns n random bytes encoded as hex.
func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ServeStream runs one MCP session reading requests from r and writing
// responses and notifications to w. It returns when r is exhausted or ctx is
// done.
func (h *StreamHandler) ServeStream(ctx context.Context, transport string, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sessionID := transport + "_" + randomHex(4)
	log := h.logger.With().Str("session", sessionID).Logger()
	log.Debug().Msg("MCP session starting")

	sess := newSession(sessionID, w)
	if err := h.mcpServer.RegisterSession(ctx, sess); err != nil {
		return err
	}
	defer h.mcpServer.UnregisterSession(ctx, sessionID)

	ctx = WithTransport(ctx, "mcp")
	ctx = h.mcpServer.WithContext(ctx, sess)

	go sess.writeNotifications(ctx)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		response := h.mcpServer.HandleMessage(ctx, json.RawMessage(line))
		if response == nil {
			continue
		}
		data, err := json.Marshal(response)
		if err != nil {
			log.Error().Err(err).Msg("MCP marshal failed")
			continue
		}
		if err := sess.write(data); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		return err
	}

	log.Debug().Msg("MCP session ended")
	return nil
}

// ServeListener accepts connections from l and serves each as its own
// session until ctx is done.
func (h *StreamHandler) ServeListener(ctx context.Context, l net.Listener) error {
	go func() {
		<-ctx.Done()
		l.Close()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return ctx.Err()
			}
			h.logger.Error().Err(err).Msg("MCP accept error")
			continue
		}

		go func() {
			defer conn.Close()
			stop := context.AfterFunc(ctx, func() { conn.Close() })
			defer stop()
			remote := conn.RemoteAddr().String()
			h.logger.Info().Str("remote", remote).Msg("MCP connection accepted")
			if err := h.ServeStream(ctx, "tcp", conn, conn); err != nil {
				h.logger.Warn().Err(err).Str("remote", remote).Msg("MCP session failed")
			}
		}()
	}
}

// session implements server.ClientSession for a single stream.
type session struct {
	id            string
	notifications chan mcp.JSONRPCNotification
	initialized   atomic.Bool
	writer        io.Writer
	mu            sync.Mutex
}

func newSession(id string, writer io.Writer) *session {
	return &session{
		id:            id,
		notifications: make(chan mcp.JSONRPCNotification, 100),
		writer:        writer,
	}
}

func (s *session) SessionID() string                                   { return s.id }
func (s *session) NotificationChannel() chan<- mcp.JSONRPCNotification { return s.notifications }
func (s *session) Initialize()                                         { s.initialized.Store(true) }
func (s *session) Initialized() bool                                   { return s.initialized.Load() }

// write sends one message followed by a newline. Responses and notifications
// share the writer.
func (s *session) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.writer.Write(append(data, '\n'))
	return err
}

func (s *session) writeNotifications(ctx context.Context) {
	for {
		select {
		case notif := <-s.notifications:
			data, err := json.Marshal(notif)
			if err != nil {
				continue
			}
			_ = s.write(data)
		case <-ctx.Done():
			return
		}
	}
}
