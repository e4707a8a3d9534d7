package ws

import (
	"DotWars/internal/shared/transport"
	"DotWars/modules/kit/logx"
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server 把 HTTP 请求升级成 websocket 连接，并跟踪存活连接以便停服时关闭。
type Server struct {
	router   *Router
	verifier transport.TokenVerifier
	upgrader websocket.Upgrader
	log      logx.Logger

	mu    sync.Mutex
	conns map[*WsServer]struct{}
}

type ServerOption func(*Server)

// WithVerifier 升级前校验 token，不通过直接 401。
func WithVerifier(v transport.TokenVerifier) ServerOption {
	return func(s *Server) {
		s.verifier = v
	}
}

func NewServer(r *Router, l logx.Logger, opts ...ServerOption) *Server {
	if l == nil {
		l = logx.Nop()
	}
	s := &Server{
		router: r,
		log:    l,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// 管理端可能跨域
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*WsServer]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	subject := ""
	if s.verifier != nil {
		sub, err := s.verifier.Verify(transport.BearerToken(req))
		if err != nil {
			s.log.Warn("websocket auth rejected", zap.String("addr", req.RemoteAddr), zap.Error(err))
			http.Error(resp, "unauthorized", http.StatusUnauthorized)
			return
		}
		subject = sub
	}

	wsConn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	conn := NewWsServer(wsConn, s.log)
	conn.Router(s.router)
	if subject != "" {
		conn.SetProperty(ConnKeySubject, subject)
	}
	s.track(conn)
	s.log.Info("websocket connected", zap.String("addr", conn.Addr()), zap.String("subject", subject))
	conn.Run(context.Background())
}

func (s *Server) track(conn *WsServer) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-conn.Done()
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
	}()
}

// Len 当前存活连接数。
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// CloseAll 关闭所有连接。http.Server.Shutdown 不会处理已升级的连接。
func (s *Server) CloseAll() {
	s.mu.Lock()
	conns := make([]*WsServer, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()
	for _, c := range conns {
		c.Close()
	}
}
