package channels

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dumalabs/duma/pkg/bus"
	"github.com/dumalabs/duma/pkg/config"
)

func newTestWebChannel(allowFrom []string) (*WebChannel, *bus.InboundMessage) {
	var seen bus.InboundMessage
	ch := NewWebChannel(
		config.WebConfig{Enabled: true, AllowFrom: allowFrom},
		config.GatewayConfig{Host: "127.0.0.1", Port: 0},
		bus.NewMessageBus(),
		WebHooks{
			Handle: func(_ context.Context, msg bus.InboundMessage) string {
				seen = msg
				return "reply to " + msg.Content
			},
			History: func() History {
				return History{
					Messages: []string{"alice: hello"},
					Members:  []string{"alice"},
					Usage:    map[string]int{"alice": 3},
				}
			},
		},
	)
	return ch, &seen
}

func TestWebChannel_Send(t *testing.T) {
	ch, seen := newTestWebChannel(nil)
	srv := ch.routes()

	body := `{"from": "S1", "name": "alice", "body": "menu"}`
	req := httptest.NewRequest(http.MethodPost, "/api/send", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["reply"] != "reply to menu" {
		t.Errorf("got reply %q", resp["reply"])
	}
	if seen.SenderID != "S1" || seen.SenderName != "alice" || seen.Channel != "web" {
		t.Errorf("handler saw %+v", *seen)
	}
}

func TestWebChannel_SendValidation(t *testing.T) {
	ch, _ := newTestWebChannel(nil)
	srv := ch.routes()

	req := httptest.NewRequest(http.MethodPost, "/api/send", strings.NewReader(`{"from": "S1"}`))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("missing body should 400, got %d", w.Code)
	}
}

func TestWebChannel_SendAllowList(t *testing.T) {
	ch, _ := newTestWebChannel([]string{"S1"})
	srv := ch.routes()

	req := httptest.NewRequest(http.MethodPost, "/api/send",
		strings.NewReader(`{"from": "intruder", "body": "menu"}`))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("unlisted sender should 403, got %d", w.Code)
	}
}

func TestWebChannel_History(t *testing.T) {
	ch, _ := newTestWebChannel(nil)
	srv := ch.routes()

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	var hist History
	if err := json.Unmarshal(w.Body.Bytes(), &hist); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(hist.Messages) != 1 || hist.Usage["alice"] != 3 {
		t.Errorf("unexpected history: %+v", hist)
	}
}

func TestWebChannel_CannotPush(t *testing.T) {
	ch, _ := newTestWebChannel(nil)
	if err := ch.Send(context.Background(), bus.OutboundMessage{Channel: "web"}); err == nil {
		t.Error("expected push to fail")
	}
}
