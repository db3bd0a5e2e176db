package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/Vt221001/employee-management/internal/core/domain"
	"github.com/Vt221001/employee-management/internal/core/token"
)

func testGateway(t *testing.T) (*Gateway, *token.Codec) {
	t.Helper()
	codec := token.NewCodec("gateway-test-secret", 15*time.Minute)
	g := NewGateway(NewHub(zerolog.Nop()), codec, GatewayConfig{}, zerolog.Nop())
	return g, codec
}

func signFor(t *testing.T, codec *token.Codec, role domain.Role) string {
	t.Helper()
	signed, err := codec.Issue(&domain.User{ID: "user123", Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}

func TestGateway_Authenticate_QueryParam(t *testing.T) {
	g, codec := testGateway(t)
	signed := signFor(t, codec, domain.RoleTeamMember)

	req := httptest.NewRequest(http.MethodGet, "/ws?token="+signed, nil)
	claims, err := g.authenticate(req)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if claims.UserID != "user123" {
		t.Fatalf("unexpected user id %q", claims.UserID)
	}
}

func TestGateway_Authenticate_BearerHeader(t *testing.T) {
	g, codec := testGateway(t)
	signed := signFor(t, codec, domain.RoleTeamMember)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	if _, err := g.authenticate(req); err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
}

func TestGateway_Authenticate_QueryParamWinsOverHeader(t *testing.T) {
	g, codec := testGateway(t)
	signed := signFor(t, codec, domain.RoleTeamMember)

	// Valid query token beats a garbage header.
	req := httptest.NewRequest(http.MethodGet, "/ws?token="+signed, nil)
	req.Header.Set("Authorization", "Bearer garbage")
	if _, err := g.authenticate(req); err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
}

func TestGateway_Authenticate_Rejections(t *testing.T) {
	g, _ := testGateway(t)
	otherCodec := token.NewCodec("other-secret", 15*time.Minute)
	expiredCodec := token.NewCodec("gateway-test-secret", -1*time.Minute)

	cases := []struct {
		name  string
		build func() *http.Request
	}{
		{"no credentials", func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/ws", nil)
		}},
		{"wrong secret", func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/ws?token="+signFor(t, otherCodec, domain.RoleTeamMember), nil)
		}},
		{"expired", func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/ws?token="+signFor(t, expiredCodec, domain.RoleTeamMember), nil)
		}},
		{"non-bearer header", func() *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			req.Header.Set("Authorization", "Token abc")
			return req
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := g.authenticate(tc.build()); err == nil {
				t.Fatalf("expected authentication failure")
			}
		})
	}
}

func TestGateway_ServeHTTP_UnauthorizedBeforeUpgrade(t *testing.T) {
	g, _ := testGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before upgrade, got %d", rec.Code)
	}
}

func dialGateway(t *testing.T, ctx context.Context, g *Gateway, accessToken string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.Dial(ctx, srv.URL+"/?token="+accessToken, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func waitForMembership(t *testing.T, room *Room, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for room.Len() != want {
		if time.Now().After(deadline) {
			t.Fatalf("room membership never reached %d", want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// A joined client never sends another frame; it must keep receiving publishes
// long after the join window has passed.
func TestGateway_SilentJoinedClientKeepsReceiving(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	codec := token.NewCodec("gateway-test-secret", 15*time.Minute)
	g := NewGateway(hub, codec, GatewayConfig{JoinTimeout: 50 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialGateway(t, ctx, g, signFor(t, codec, domain.RoleTeamMember))
	if err := wsjson.Write(ctx, conn, Envelope{Type: TypeJoinRoom, Room: "user123"}); err != nil {
		t.Fatalf("join: %v", err)
	}

	room := hub.GetOrCreateRoom("user123")
	waitForMembership(t, room, 1)

	// Stay completely silent for several join windows, then publish.
	time.Sleep(300 * time.Millisecond)
	if room.Len() != 1 {
		t.Fatalf("silent client was evicted from the room")
	}
	hub.Publish("user123", domain.Notification{Message: "late delivery"})

	var env Envelope
	if err := wsjson.Read(ctx, conn, &env); err != nil {
		t.Fatalf("read after quiet period: %v", err)
	}
	if env.Type != TypeNewTask {
		t.Fatalf("expected %s envelope, got %s", TypeNewTask, env.Type)
	}
	var payload domain.Notification
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Message != "late delivery" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
}

// A connection that never joins a room is useless and gets closed once the
// join window expires.
func TestGateway_UnjoinedClientClosedAfterJoinWindow(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	codec := token.NewCodec("gateway-test-secret", 15*time.Minute)
	g := NewGateway(hub, codec, GatewayConfig{JoinTimeout: 50 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialGateway(t, ctx, g, signFor(t, codec, domain.RoleTeamMember))

	var env Envelope
	if err := wsjson.Read(ctx, conn, &env); err == nil {
		t.Fatalf("expected server to close the unjoined connection, got %+v", env)
	}
}

func TestGateway_ConfigDefaults(t *testing.T) {
	g, _ := testGateway(t)
	if g.sendQueueSize != defaultSendQueueSize {
		t.Fatalf("send queue size = %d, want %d", g.sendQueueSize, defaultSendQueueSize)
	}
	if g.writeTimeout != defaultWriteTimeout {
		t.Fatalf("write timeout = %v, want %v", g.writeTimeout, defaultWriteTimeout)
	}
	if g.joinTimeout != defaultJoinTimeout {
		t.Fatalf("join timeout = %v, want %v", g.joinTimeout, defaultJoinTimeout)
	}
}
