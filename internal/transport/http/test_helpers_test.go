package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/sobachat/sobachat-server/internal/config"
	"github.com/sobachat/sobachat-server/internal/core"
	"github.com/sobachat/sobachat-server/internal/proto"
	"github.com/sobachat/sobachat-server/internal/session"
	"github.com/sobachat/sobachat-server/internal/store/sqlite"
	"github.com/sobachat/sobachat-server/internal/uploads"
)

const testUploadCap = 1 << 20

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()

	hub := core.NewHub([]string{"General", "Random", "Tech"}, &logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	st, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	ups, err := uploads.NewService(t.TempDir(), testUploadCap, st, &logger)
	if err != nil {
		t.Fatalf("create upload service: %v", err)
	}

	sessions := session.NewManager("test-secret", time.Hour)

	server := NewServer(hub, sessions, ups, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		UploadMaxBytes:    testUploadCap,
	}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts
}

// testOutbound mirrors proto.Outbound with raw data for test-side decoding.
type testOutbound struct {
	Type  string          `json:"type"`
	Event string          `json:"event,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *proto.Error    `json:"error,omitempty"`
}

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func sendInbound(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s data: %v", msgType, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

// readErrorEnvelope reads envelopes until an error one arrives.
func readErrorEnvelope(ctx context.Context, conn *websocket.Conn, out *testOutbound) error {
	for {
		if err := wsjson.Read(ctx, conn, out); err != nil {
			return err
		}
		if out.Type == proto.OutboundTypeError {
			return nil
		}
	}
}

// readUntilEvent reads outbound envelopes until one carries the wanted event
// name, skipping the broadcasts that precede it.
func readUntilEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) testOutbound {
	t.Helper()

	for {
		var out testOutbound
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			t.Fatalf("read waiting for %q: %v", event, err)
		}
		if out.Type == proto.OutboundTypeEvent && out.Event == event {
			return out
		}
	}
}
