// Package web serves the browser version of the game: an embedded page
// and a websocket endpoint that hosts one session per connection.
package web

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/spacedodge/internal/game"
	"github.com/tomz197/spacedodge/internal/loop/server"
)

//go:embed index.html
var htmlPage string

const (
	readLimit    = 4 << 10
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
)

// Options configures a Handler.
type Options struct {
	Rules       game.Rules
	Leaderboard server.Leaderboard // Shared by all sessions
	DisplayHost string             // Advertised SSH host on the page
	SSHPort     string
	Logger      *log.Logger
}

// Handler routes the page and the websocket endpoint.
type Handler struct {
	ctx      context.Context
	opts     Options
	logger   *log.Logger
	mux      *http.ServeMux
	page     string
	upgrader websocket.Upgrader
}

// NewHandler creates a handler. Sessions end when ctx is cancelled.
func NewHandler(ctx context.Context, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := &Handler{
		ctx:    ctx,
		opts:   opts,
		logger: logger,
		mux:    http.NewServeMux(),
		page: strings.NewReplacer(
			"{{.SSHHost}}", opts.DisplayHost,
			"{{.SSHPort}}", opts.SSHPort,
		).Replace(htmlPage),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	h.mux.HandleFunc("GET /{$}", h.serveIndex)
	h.mux.HandleFunc("GET /ws", h.serveWS)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(h.page))
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	logger := h.logger.With("remote", r.RemoteAddr)
	logger.Info("web session started")

	ctx, cancel := context.WithCancel(h.ctx)
	defer cancel()

	srv := server.New(server.Options{
		Rules:       h.opts.Rules,
		Leaderboard: h.opts.Leaderboard,
		Logger:      logger,
	})
	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		srv.Run(ctx)
	}()

	go func() {
		defer cancel()
		readLoop(conn, srv, logger)
	}()

	if err := writeLoop(ctx, conn, srv, srv.TickInterval()); err != nil && !errors.Is(err, context.Canceled) {
		logger.Debug("websocket write ended", "err", err)
	}
	cancel()
	<-serverDone
	logger.Info("web session ended", "score", srv.GetSnapshot().Score)
}

// readLoop forwards browser messages to the server until the connection
// fails or goes silent.
func readLoop(conn *websocket.Conn, gs server.GameServer, logger *log.Logger) {
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket read failed", "err", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		if msgType != websocket.BinaryMessage {
			continue
		}

		in, err := DecodeInput(data)
		if err != nil {
			logger.Debug("bad client message", "err", err)
			continue
		}
		gs.SendInput(in)
	}
}

// writeLoop is the connection's only writer: one frame per new tick plus
// periodic pings.
func writeLoop(ctx context.Context, conn *websocket.Conn, gs server.GameServer, tick time.Duration) error {
	frames := time.NewTicker(tick)
	defer frames.Stop()
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()

	events := gs.Events()
	var pending []game.Event
	var lastTick uint64
	sent := false

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return ctx.Err()

		case <-pings.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}

		case <-frames.C:
			pending, events = drainEvents(events, pending)

			snap := gs.GetSnapshot()
			if sent && snap.Tick == lastTick {
				continue
			}
			data, err := EncodeFrame(NewFrame(snap, pending))
			if err != nil {
				return err
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return err
			}
			pending = pending[:0]
			lastTick = snap.Tick
			sent = true
		}
	}
}

// drainEvents appends all buffered events to pending. A closed channel is
// returned as nil so later calls skip it.
func drainEvents(events <-chan game.Event, pending []game.Event) ([]game.Event, <-chan game.Event) {
	for events != nil {
		select {
		case ev, ok := <-events:
			if !ok {
				return pending, nil
			}
			pending = append(pending, ev)
		default:
			return pending, events
		}
	}
	return pending, nil
}
