package session

import (
	"DotWars/internal/shared/transport/ws"
	"sync"
)

// Hub 战斗观战订阅表：battleID 到连接集合，连接关闭后自动退订。
type Hub interface {
	Watch(battleID string, conn ws.WSConn)
	Unwatch(battleID string, conn ws.WSConn)
	UnwatchConn(conn ws.WSConn)
	Publish(battleID, name string, data any) int
	Watchers(battleID string) int
}

type WatchHub struct {
	sync.RWMutex
	battle2conns map[string]map[ws.WSConn]struct{}
	conn2battles map[ws.WSConn]map[string]struct{}
	watched      map[ws.WSConn]struct{}
}

func NewWatchHub() *WatchHub {
	return &WatchHub{
		battle2conns: make(map[string]map[ws.WSConn]struct{}),
		conn2battles: make(map[ws.WSConn]map[string]struct{}),
		watched:      make(map[ws.WSConn]struct{}),
	}
}

func (h *WatchHub) Watch(battleID string, conn ws.WSConn) {
	if conn == nil || battleID == "" {
		return
	}
	h.Lock()
	defer h.Unlock()

	// 每条连接只起一个 watcher
	if _, ok := h.watched[conn]; !ok {
		h.watched[conn] = struct{}{}
		go h.watchConnDone(conn)
	}

	conns := h.battle2conns[battleID]
	if conns == nil {
		conns = make(map[ws.WSConn]struct{})
		h.battle2conns[battleID] = conns
	}
	conns[conn] = struct{}{}

	battles := h.conn2battles[conn]
	if battles == nil {
		battles = make(map[string]struct{})
		h.conn2battles[conn] = battles
	}
	battles[battleID] = struct{}{}
}

func (h *WatchHub) watchConnDone(conn ws.WSConn) {
	<-conn.Done()
	h.UnwatchConn(conn)
}

func (h *WatchHub) Unwatch(battleID string, conn ws.WSConn) {
	h.Lock()
	defer h.Unlock()
	h.unlink(battleID, conn)
}

func (h *WatchHub) UnwatchConn(conn ws.WSConn) {
	h.Lock()
	defer h.Unlock()
	for battleID := range h.conn2battles[conn] {
		h.unlink(battleID, conn)
	}
	delete(h.conn2battles, conn)
	delete(h.watched, conn)
}

func (h *WatchHub) unlink(battleID string, conn ws.WSConn) {
	if conns := h.battle2conns[battleID]; conns != nil {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.battle2conns, battleID)
		}
	}
	if battles := h.conn2battles[conn]; battles != nil {
		delete(battles, battleID)
	}
}

// Publish 推给该战斗的所有观战连接，返回推送数量。
func (h *WatchHub) Publish(battleID, name string, data any) int {
	h.RLock()
	conns := make([]ws.WSConn, 0, len(h.battle2conns[battleID]))
	for c := range h.battle2conns[battleID] {
		conns = append(conns, c)
	}
	h.RUnlock()

	for _, c := range conns {
		c.Push(name, data)
	}
	return len(conns)
}

func (h *WatchHub) Watchers(battleID string) int {
	h.RLock()
	defer h.RUnlock()
	return len(h.battle2conns[battleID])
}

var _ Hub = (*WatchHub)(nil)
