package remote

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"go-fireworks/internal/bridge"
)

type recorder struct {
	mu   sync.Mutex
	cmds []bridge.Command
	got  chan struct{}
}

func (r *recorder) Send(_ context.Context, c bridge.Command) error {
	r.mu.Lock()
	r.cmds = append(r.cmds, c)
	r.mu.Unlock()
	r.got <- struct{}{}
	return nil
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) bridge.Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	e, err := bridge.DecodeEvent(data)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func waitSessions(t *testing.T, s *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Sessions() != n {
		if time.Now().After(deadline) {
			t.Fatalf("sessions = %d, want %d", s.Sessions(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCommandsReachCommander(t *testing.T) {
	rec := &recorder{got: make(chan struct{}, 4)}
	s := NewServer(rec)
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dial(t, srv)
	data, _ := bridge.EncodeCommand(bridge.SpawnAt(10, 20))
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatal(err)
	}
	select {
	case <-rec.got:
	case <-time.After(2 * time.Second):
		t.Fatal("command not forwarded")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.cmds[0].Type != bridge.CmdSpawnAt || rec.cmds[0].X != 10 {
		t.Fatalf("forwarded %+v", rec.cmds[0])
	}
}

func TestMalformedFrameFaultsOnlySender(t *testing.T) {
	rec := &recorder{got: make(chan struct{}, 4)}
	s := NewServer(rec)
	srv := httptest.NewServer(s)
	defer srv.Close()

	bad := dial(t, srv)
	good := dial(t, srv)
	waitSessions(t, s, 2)

	bad.WriteMessage(websocket.BinaryMessage, []byte{0xc1})
	if e := readEvent(t, bad); e.Type != bridge.EvtFault {
		t.Fatalf("got %+v", e)
	}

	// следующая рассылка доходит до хорошей сессии первой
	s.Broadcast(bridge.Event{Type: bridge.EvtFrameRate, FPS: 59})
	if e := readEvent(t, good); e.Type != bridge.EvtFrameRate || e.FPS != 59 {
		t.Fatalf("good session got %+v", e)
	}
}

func TestRemoteInitRejected(t *testing.T) {
	rec := &recorder{got: make(chan struct{}, 1)}
	s := NewServer(rec)
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dial(t, srv)
	data, _ := bridge.EncodeCommand(bridge.Init(10, 10, 1))
	conn.WriteMessage(websocket.BinaryMessage, data)
	if e := readEvent(t, conn); e.Type != bridge.EvtFault {
		t.Fatalf("got %+v", e)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.cmds) != 0 {
		t.Fatal("init reached the worker")
	}
}

func TestBroadcastSkipsFrames(t *testing.T) {
	s := NewServer(&recorder{got: make(chan struct{}, 1)})
	srv := httptest.NewServer(s)
	defer srv.Close()
	conn := dial(t, srv)
	waitSessions(t, s, 1)

	s.Broadcast(bridge.Event{Type: bridge.EvtFrame})
	s.Broadcast(bridge.Event{Type: bridge.EvtMode, Mode: "degraded"})

	if e := readEvent(t, conn); e.Type != bridge.EvtMode || e.Mode != "degraded" {
		t.Fatalf("got %+v", e)
	}
}

func TestSessionDroppedOnClose(t *testing.T) {
	s := NewServer(&recorder{got: make(chan struct{}, 1)})
	srv := httptest.NewServer(s)
	defer srv.Close()
	conn := dial(t, srv)
	waitSessions(t, s, 1)
	conn.Close()
	waitSessions(t, s, 0)
}
