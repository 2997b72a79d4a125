// internal/remote/server.go
package remote

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"go-fireworks/internal/bridge"
)

const writeWait = 2 * time.Second

// Commander принимает команды для движка. Реализуется bridge.Worker.
type Commander interface {
	Send(ctx context.Context, c bridge.Command) error
}

type session struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

// WriteMessage пишет в сокет под мьютексом сессии с дедлайном записи
func (s *session) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(messageType, data)
}

// Server: websocket-пульт шоу: принимает msgpack-команды и рассылает
// события воркера всем подключённым сессиям.
type Server struct {
	commander Commander
	upgrader  websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
}

func NewServer(commander Commander) *Server {
	return &Server{
		commander: commander,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sessions: make(map[string]*session),
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[remote] upgrade failed: %v", err)
		return
	}
	sess := &session{id: uuid.NewString(), conn: conn}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	log.Printf("[remote] session %s connected from %s", sess.id, r.RemoteAddr)

	defer s.drop(sess.id)
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[remote] session %s read: %v", sess.id, err)
			}
			return
		}
		if mt != websocket.BinaryMessage {
			s.reply(sess, bridge.Event{Type: bridge.EvtFault, Message: "binary msgpack frames expected"})
			continue
		}
		cmd, err := bridge.DecodeCommand(data)
		if err != nil {
			s.reply(sess, bridge.Event{Type: bridge.EvtFault, Message: err.Error()})
			continue
		}
		// размер и сид сцены задаёт окно хоста
		if cmd.Type == bridge.CmdInit {
			s.reply(sess, bridge.Event{Type: bridge.EvtFault, Message: "init is reserved for the host"})
			continue
		}
		if err := s.commander.Send(r.Context(), cmd); err != nil {
			return
		}
	}
}

// reply отправляет событие одной сессии
func (s *Server) reply(sess *session, e bridge.Event) {
	data, err := bridge.EncodeEvent(e)
	if err != nil {
		log.Printf("[remote] %v", err)
		return
	}
	if err := sess.WriteMessage(websocket.BinaryMessage, data); err != nil {
		log.Printf("[remote] failed to reply to %s: %v", sess.id, err)
	}
}

// Broadcast рассылает событие всем сессиям. Кадры по сети не ходят.
func (s *Server) Broadcast(e bridge.Event) {
	if e.Type == bridge.EvtFrame {
		return
	}
	data, err := bridge.EncodeEvent(e)
	if err != nil {
		log.Printf("[remote] %v", err)
		return
	}

	s.mu.Lock()
	subs := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		subs = append(subs, sess)
	}
	s.mu.Unlock()

	for _, sess := range subs {
		if err := sess.WriteMessage(websocket.BinaryMessage, data); err != nil {
			log.Printf("[remote] failed to send %s to %s: %v", e.Type, sess.id, err)
			s.drop(sess.id)
		}
	}
}

func (s *Server) drop(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.conn.Close()
		log.Printf("[remote] session %s closed", id)
	}
}

// Sessions: число подключённых сессий
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ListenAndServe поднимает сервер на addr, путь /ws. Останавливается по ctx.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[remote] listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
