package realtime

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/Vt221001/employee-management/internal/api/metrics"
	"github.com/Vt221001/employee-management/internal/core/domain"
	"github.com/Vt221001/employee-management/internal/core/token"
)

const (
	defaultSendQueueSize = 256
	defaultWriteTimeout  = 5 * time.Second
	defaultJoinTimeout   = 30 * time.Second
	heartbeatInterval    = 30 * time.Second
	heartbeatTimeout     = 10 * time.Second
	maxPingFailures      = 3
	maxFrameBytes        = 16 * 1024
)

// GatewayConfig tunes the websocket endpoint.
type GatewayConfig struct {
	// OriginPatterns authorizes cross-origin browsers; empty means same-host only.
	OriginPatterns []string
	SendQueueSize  int
	WriteTimeout   time.Duration
	// JoinTimeout bounds how long a connection may sit without joining a
	// room. Once joined, a client is listen-only and may stay silent
	// indefinitely; the heartbeat loop owns liveness from then on.
	JoinTimeout time.Duration
}

// Gateway is the websocket entrypoint for realtime notifications. It
// authenticates the connection with an access token, handles joinRoom
// envelopes, and drains each client's send queue on a dedicated writer
// goroutine so within-connection delivery order follows publish order.
type Gateway struct {
	hub    *Hub
	access *token.Codec
	log    zerolog.Logger

	originPatterns []string
	sendQueueSize  int
	writeTimeout   time.Duration
	joinTimeout    time.Duration
}

// NewGateway constructs a Gateway with sane defaults for zero-value config.
func NewGateway(hub *Hub, access *token.Codec, cfg GatewayConfig, log zerolog.Logger) *Gateway {
	g := &Gateway{
		hub:            hub,
		access:         access,
		log:            log,
		originPatterns: cfg.OriginPatterns,
		sendQueueSize:  cfg.SendQueueSize,
		writeTimeout:   cfg.WriteTimeout,
		joinTimeout:    cfg.JoinTimeout,
	}
	if g.sendQueueSize <= 0 {
		g.sendQueueSize = defaultSendQueueSize
	}
	if g.writeTimeout <= 0 {
		g.writeTimeout = defaultWriteTimeout
	}
	if g.joinTimeout <= 0 {
		g.joinTimeout = defaultJoinTimeout
	}
	return g
}

// ServeHTTP upgrades the request and runs the realtime session loop.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, err := g.authenticate(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: g.originPatterns,
	})
	if err != nil {
		g.log.Error().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	conn.SetReadLimit(maxFrameBytes)

	sessionID := newSessionID()
	client := NewClient(claims.UserID, sessionID, g.sendQueueSize)

	metrics.RealtimeConnections.Inc()
	defer metrics.RealtimeConnections.Dec()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var (
		closeOnce sync.Once
		joinedMu  sync.Mutex
		joined    []*Room
	)

	// Disconnect removes the connection from all its rooms, whatever closed it.
	shutdown := func(code websocket.StatusCode, reason string) {
		closeOnce.Do(func() {
			joinedMu.Lock()
			for _, room := range joined {
				room.Leave(sessionID)
			}
			joined = nil
			joinedMu.Unlock()

			client.Close()
			_ = conn.Close(code, reason)
			cancel()
		})
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case <-ctx.Done():
				return
			case <-client.Done():
				return
			case env := <-client.Send:
				if err := g.writeEnvelope(ctx, conn, env); err != nil {
					g.log.Debug().Err(err).Str("session_id", sessionID).Msg("websocket write failed")
					shutdown(websocket.StatusAbnormalClosure, "write failed")
					return
				}
			}
		}
	}()

	go g.heartbeat(ctx, conn, client, sessionID, shutdown)

	g.log.Info().Str("session_id", sessionID).Str("user_id", claims.UserID).Msg("realtime client connected")

	hasJoined := false

readLoop:
	for {
		// Bound only the pre-join read: a joined client is listen-only, so
		// an expiring deadline here would evict healthy connections. A read
		// that fails on a timed-out context poisons the connection, which is
		// why the deadline cannot simply be retried.
		readCtx := ctx
		readCancel := context.CancelFunc(func() {})
		if !hasJoined {
			readCtx, readCancel = context.WithTimeout(ctx, g.joinTimeout)
		}
		var env Envelope
		err := wsjson.Read(readCtx, conn, &env)
		readCancel()

		if err != nil {
			if websocket.CloseStatus(err) != -1 || ctx.Err() != nil {
				shutdown(websocket.StatusNormalClosure, "peer closed")
			} else {
				shutdown(websocket.StatusAbnormalClosure, "read failed")
			}
			break readLoop
		}

		if err := env.Validate(); err != nil {
			g.trySendError(client, err.Error())
			continue
		}

		switch env.Type {
		case TypeJoinRoom:
			// A connection may only join its own room; admins may observe any.
			if env.Room != claims.UserID && claims.Role != domain.RoleAdmin {
				g.trySendError(client, "cannot join another user's room")
				continue
			}

			room := g.hub.GetOrCreateRoom(env.Room)
			room.Join(client)

			joinedMu.Lock()
			joined = append(joined, room)
			joinedMu.Unlock()
			hasJoined = true

		default:
			g.trySendError(client, "unsupported event type: "+env.Type)
		}
	}

	shutdown(websocket.StatusNormalClosure, "bye")
	<-writerDone

	g.log.Info().Str("session_id", sessionID).Msg("realtime client disconnected")
}

// authenticate reads the access token from the Authorization header or the
// token query parameter (browsers cannot set headers on websocket upgrades).
func (g *Gateway) authenticate(r *http.Request) (*token.Claims, error) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		header := r.Header.Get("Authorization")
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			raw = parts[1]
		}
	}
	return g.access.Verify(raw)
}

func (g *Gateway) heartbeat(ctx context.Context, conn *websocket.Conn, client *Client, sessionID string, shutdown func(websocket.StatusCode, string)) {
	t := time.NewTicker(heartbeatInterval)
	defer t.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-client.Done():
			return
		case <-t.C:
			pingCtx, pingCancel := context.WithTimeout(ctx, heartbeatTimeout)
			err := conn.Ping(pingCtx)
			pingCancel()

			if err != nil {
				failures++
				if failures >= maxPingFailures {
					g.log.Debug().Str("session_id", sessionID).Msg("heartbeat failed, closing")
					shutdown(websocket.StatusGoingAway, "heartbeat failed")
					return
				}
				continue
			}
			failures = 0
		}
	}
}

func (g *Gateway) writeEnvelope(ctx context.Context, conn *websocket.Conn, env Envelope) error {
	writeCtx, cancel := context.WithTimeout(ctx, g.writeTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, conn, env)
}

func (g *Gateway) trySendError(client *Client, message string) {
	env, err := NewDataEnvelope(TypeError, map[string]string{"message": message})
	if err != nil {
		return
	}
	select {
	case client.Send <- env:
	default:
	}
}
