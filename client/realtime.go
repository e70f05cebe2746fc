package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Zoharvan12/simply-mind-3/config"
	"github.com/gorilla/websocket"
)

// ChangeEvent is one validated row-change notification.
type ChangeEvent struct {
	Table string
	Type  string // INSERT, UPDATE or DELETE
	New   json.RawMessage
}

type ChangeHandler func(ChangeEvent)

// Subscription is the cancellation handle for one realtime stream. Owners
// must call Close on teardown or sign-out so no callback fires against a
// stale session.
type Subscription interface {
	Close()
}

const heartbeatInterval = 25 * time.Second

// wsConn is the slice of *websocket.Conn the bridge needs; tests inject
// scripted connections through it.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v interface{}) error
	Close() error
}

// Bridge subscribes to server-pushed row changes over the realtime
// websocket (phoenix channel protocol).
type Bridge struct {
	wsURL string
	token string
	dial  func(ctx context.Context) (wsConn, error)
}

// NewBridge builds a bridge for the given Supabase project. projectURL is
// the https project URL; the websocket endpoint is derived from it.
func NewBridge(projectURL, apiKey, accessToken string) *Bridge {
	wsURL := strings.Replace(projectURL, "http", "ws", 1) +
		"/realtime/v1/websocket?apikey=" + url.QueryEscape(apiKey) + "&vsn=1.0.0"

	return &Bridge{
		wsURL: wsURL,
		token: accessToken,
		dial: func(ctx context.Context) (wsConn, error) {
			conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
			return conn, err
		},
	}
}

// SubscribeProfile streams changes to the user's own profile row, the
// carrier of the monthly usage counter.
func (b *Bridge) SubscribeProfile(ctx context.Context, userID string, fn ChangeHandler) (Subscription, error) {
	topic := fmt.Sprintf("realtime:public:profiles:id=eq.%s", userID)
	return b.subscribe(ctx, topic, fn)
}

// SubscribeChats streams changes to the user's chat rows (retitles,
// renames).
func (b *Bridge) SubscribeChats(ctx context.Context, userID string, fn ChangeHandler) (Subscription, error) {
	topic := fmt.Sprintf("realtime:public:chats:user_id=eq.%s", userID)
	return b.subscribe(ctx, topic, fn)
}

type phoenixMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

func (b *Bridge) subscribe(ctx context.Context, topic string, fn ChangeHandler) (Subscription, error) {
	conn, err := b.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to dial realtime endpoint: %w", err)
	}

	join := map[string]interface{}{
		"topic":   topic,
		"event":   "phx_join",
		"payload": map[string]interface{}{"user_token": b.token},
		"ref":     "1",
	}
	if err := conn.WriteJSON(join); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to join channel %s: %w", topic, err)
	}

	sub := &subscription{conn: conn, done: make(chan struct{})}
	go sub.readLoop(topic, fn)
	go sub.heartbeatLoop()
	return sub, nil
}

type subscription struct {
	conn      wsConn
	done      chan struct{}
	closeOnce sync.Once
}

func (s *subscription) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

func (s *subscription) readLoop(topic string, fn ChangeHandler) {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
			default:
				config.Logger.Warn("Realtime connection closed:", err)
				s.Close()
			}
			return
		}

		event, ok := parseChangeEvent(data, topic)
		if !ok {
			continue
		}
		fn(event)
	}
}

func (s *subscription) heartbeatLoop() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	ref := 2
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			beat := map[string]interface{}{
				"topic":   "phoenix",
				"event":   "heartbeat",
				"payload": map[string]interface{}{},
				"ref":     fmt.Sprintf("%d", ref),
			}
			if err := s.conn.WriteJSON(beat); err != nil {
				config.Logger.Warn("Realtime heartbeat failed:", err)
				s.Close()
				return
			}
			ref++
		}
	}
}

// parseChangeEvent validates one frame. Anything that is not a
// well-formed row-change event for the subscribed topic is dropped; a
// corrupt push must never reach local state.
func parseChangeEvent(data []byte, topic string) (ChangeEvent, bool) {
	var msg phoenixMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		config.Logger.Warn("Dropping malformed realtime frame")
		return ChangeEvent{}, false
	}

	switch msg.Event {
	case "INSERT", "UPDATE", "DELETE":
	default:
		// phx_reply, presence, heartbeats
		return ChangeEvent{}, false
	}
	if msg.Topic != topic {
		return ChangeEvent{}, false
	}

	var payload struct {
		Table  string          `json:"table"`
		New    json.RawMessage `json:"new"`
		Record json.RawMessage `json:"record"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		config.Logger.Warn("Dropping realtime event with malformed payload")
		return ChangeEvent{}, false
	}

	row := payload.New
	if len(row) == 0 {
		row = payload.Record
	}
	if !json.Valid(row) || len(row) == 0 || row[0] != '{' {
		config.Logger.Warn("Dropping realtime event without a row payload")
		return ChangeEvent{}, false
	}

	return ChangeEvent{Table: payload.Table, Type: msg.Event, New: row}, true
}

// WireQuota funnels profile pushes into the quota tracker.
func WireQuota(ctx context.Context, b *Bridge, userID string, tracker *QuotaTracker) (Subscription, error) {
	return b.SubscribeProfile(ctx, userID, func(ev ChangeEvent) {
		tracker.ApplyPush(ev.New)
	})
}

// WireChats funnels chat row updates into the store. Only updates are
// applied; inserts and deletes flow through the store's own operations.
func WireChats(ctx context.Context, b *Bridge, userID string, store *Store) (Subscription, error) {
	return b.SubscribeChats(ctx, userID, func(ev ChangeEvent) {
		if ev.Type == "UPDATE" {
			store.UpdateChatFromPush(ev.New)
		}
	})
}
