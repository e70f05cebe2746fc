package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Zoharvan12/simply-mind-3/config"
	"github.com/Zoharvan12/simply-mind-3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedConn feeds canned frames to the subscription read loop.
type scriptedConn struct {
	mu     sync.Mutex
	frames chan []byte
	writes []map[string]interface{}
	closed bool
}

func newScriptedConn() *scriptedConn {
	return &scriptedConn{frames: make(chan []byte, 16)}
}

func (c *scriptedConn) ReadMessage() (int, []byte, error) {
	data, ok := <-c.frames
	if !ok {
		return 0, nil, errors.New("connection closed")
	}
	return 1, data, nil
}

func (c *scriptedConn) WriteJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	c.mu.Lock()
	c.writes = append(c.writes, m)
	c.mu.Unlock()
	return nil
}

func (c *scriptedConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.frames)
	}
	return nil
}

func (c *scriptedConn) feed(t *testing.T, frame map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(frame)
	require.NoError(t, err)
	c.frames <- data
}

func testBridge(conn *scriptedConn) *Bridge {
	return &Bridge{
		token: "test-token",
		dial: func(ctx context.Context) (wsConn, error) {
			return conn, nil
		},
	}
}

func changeFrame(topic, eventType string, row map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"topic": topic,
		"event": eventType,
		"ref":   nil,
		"payload": map[string]interface{}{
			"table":  "profiles",
			"record": row,
		},
	}
}

func TestSubscribeJoinsChannelAndDeliversEvents(t *testing.T) {
	conn := newScriptedConn()
	bridge := testBridge(conn)

	events := make(chan ChangeEvent, 4)
	sub, err := bridge.SubscribeProfile(context.Background(), "user-1", func(ev ChangeEvent) {
		events <- ev
	})
	require.NoError(t, err)
	defer sub.Close()

	topic := "realtime:public:profiles:id=eq.user-1"

	conn.mu.Lock()
	require.NotEmpty(t, conn.writes)
	join := conn.writes[0]
	conn.mu.Unlock()
	assert.Equal(t, "phx_join", join["event"])
	assert.Equal(t, topic, join["topic"])

	// Join ack is ignored, the UPDATE is delivered.
	conn.feed(t, map[string]interface{}{"topic": topic, "event": "phx_reply", "payload": map[string]interface{}{"status": "ok"}})
	conn.feed(t, changeFrame(topic, "UPDATE", map[string]interface{}{"id": "user-1", "monthly_messages": 50}))

	select {
	case ev := <-events:
		assert.Equal(t, "UPDATE", ev.Type)
		var row map[string]interface{}
		require.NoError(t, json.Unmarshal(ev.New, &row))
		assert.EqualValues(t, 50, row["monthly_messages"])
	case <-time.After(2 * time.Second):
		t.Fatal("event never delivered")
	}
}

func TestSubscribeDropsMalformedAndForeignFrames(t *testing.T) {
	conn := newScriptedConn()
	bridge := testBridge(conn)

	events := make(chan ChangeEvent, 4)
	sub, err := bridge.SubscribeProfile(context.Background(), "user-1", func(ev ChangeEvent) {
		events <- ev
	})
	require.NoError(t, err)
	defer sub.Close()

	topic := "realtime:public:profiles:id=eq.user-1"

	conn.frames <- []byte(`this is not json`)
	conn.feed(t, map[string]interface{}{"topic": topic, "event": "UPDATE", "payload": map[string]interface{}{"table": "profiles"}}) // no row
	conn.feed(t, changeFrame("realtime:public:profiles:id=eq.someone-else", "UPDATE", map[string]interface{}{"id": "x"}))
	conn.feed(t, changeFrame(topic, "UPDATE", map[string]interface{}{"id": "user-1", "monthly_messages": 7}))

	select {
	case ev := <-events:
		var row map[string]interface{}
		require.NoError(t, json.Unmarshal(ev.New, &row))
		assert.EqualValues(t, 7, row["monthly_messages"], "only the well-formed frame for our topic may arrive")
	case <-time.After(2 * time.Second):
		t.Fatal("valid event never delivered")
	}
	assert.Empty(t, events)
}

func TestSubscriptionCloseStopsDelivery(t *testing.T) {
	conn := newScriptedConn()
	bridge := testBridge(conn)

	var mu sync.Mutex
	delivered := 0
	sub, err := bridge.SubscribeChats(context.Background(), "user-1", func(ev ChangeEvent) {
		mu.Lock()
		delivered++
		mu.Unlock()
	})
	require.NoError(t, err)

	sub.Close()
	sub.Close() // idempotent

	conn.mu.Lock()
	assert.True(t, conn.closed)
	conn.mu.Unlock()

	mu.Lock()
	assert.Zero(t, delivered)
	mu.Unlock()
}

func TestParseChangeEventValidation(t *testing.T) {
	topic := "realtime:public:chats:user_id=eq.user-1"

	frame := func(v map[string]interface{}) []byte {
		data, _ := json.Marshal(v)
		return data
	}

	cases := []struct {
		name string
		data []byte
		ok   bool
	}{
		{"update with new field", frame(map[string]interface{}{
			"topic": topic, "event": "UPDATE",
			"payload": map[string]interface{}{"table": "chats", "new": map[string]interface{}{"id": "c1", "title": "T"}},
		}), true},
		{"update with record field", frame(map[string]interface{}{
			"topic": topic, "event": "UPDATE",
			"payload": map[string]interface{}{"table": "chats", "record": map[string]interface{}{"id": "c1"}},
		}), true},
		{"reply frame", frame(map[string]interface{}{"topic": topic, "event": "phx_reply", "payload": map[string]interface{}{}}), false},
		{"missing row", frame(map[string]interface{}{"topic": topic, "event": "UPDATE", "payload": map[string]interface{}{"table": "chats"}}), false},
		{"row not an object", frame(map[string]interface{}{"topic": topic, "event": "UPDATE", "payload": map[string]interface{}{"record": "oops"}}), false},
		{"wrong topic", frame(map[string]interface{}{"topic": "realtime:public:chats:user_id=eq.intruder", "event": "UPDATE", "payload": map[string]interface{}{"record": map[string]interface{}{"id": "c1"}}}), false},
		{"not json", []byte("{{"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := parseChangeEvent(tc.data, topic)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestWireQuotaFunnelsProfilePushes(t *testing.T) {
	conn := newScriptedConn()
	bridge := testBridge(conn)
	tracker := newTracker(types.RoleFree, 10)

	sub, err := WireQuota(context.Background(), bridge, "user-1", tracker)
	require.NoError(t, err)
	defer sub.Close()

	topic := "realtime:public:profiles:id=eq.user-1"
	conn.feed(t, changeFrame(topic, "UPDATE", map[string]interface{}{"id": "user-1", "monthly_messages": 50}))

	require.Eventually(t, func() bool {
		return tracker.MonthlyMessages() == 50
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, tracker.IsLimitReached())
}

func TestWireChatsFunnelsChatUpdates(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	store := NewStore(backend, &fakeCompleter{}, nil)
	chat, _ := backend.CreateChat(ctx, config.PlaceholderChatTitle)
	require.NoError(t, store.FetchChats(ctx))

	conn := newScriptedConn()
	bridge := testBridge(conn)
	sub, err := WireChats(ctx, bridge, "user-1", store)
	require.NoError(t, err)
	defer sub.Close()

	topic := "realtime:public:chats:user_id=eq.user-1"
	conn.feed(t, changeFrame(topic, "UPDATE", map[string]interface{}{"id": chat.ID, "title": "Morning Pages"}))
	// Inserts are ignored by the chat wiring.
	conn.feed(t, changeFrame(topic, "INSERT", map[string]interface{}{"id": "other", "title": "X"}))

	require.Eventually(t, func() bool {
		return store.Snapshot().Chats[0].Title == "Morning Pages"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Len(t, store.Snapshot().Chats, 1)
}

func TestNewBridgeDerivesWebsocketURL(t *testing.T) {
	bridge := NewBridge("https://abc.supabase.co", "anon-key", "jwt")
	assert.Equal(t, fmt.Sprintf("wss://abc.supabase.co/realtime/v1/websocket?apikey=%s&vsn=1.0.0", "anon-key"), bridge.wsURL)
}
