package session

import (
	"sync"
	"testing"
	"time"
)

type fakeConn struct {
	mu     sync.Mutex
	pushed []string
	done   chan struct{}
	once   sync.Once
}

func newFakeConn() *fakeConn { return &fakeConn{done: make(chan struct{})} }

func (c *fakeConn) SetProperty(key string, value any) {}
func (c *fakeConn) GetProperty(key string) any        { return nil }
func (c *fakeConn) RemoveProperty(key string)         {}
func (c *fakeConn) Addr() string                      { return "fake" }
func (c *fakeConn) Done() <-chan struct{}             { return c.done }
func (c *fakeConn) Close()                            { c.once.Do(func() { close(c.done) }) }

func (c *fakeConn) Push(name string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushed = append(c.pushed, name)
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pushed)
}

func TestWatchHub_Publish只推给订阅者(t *testing.T) {
	h := NewWatchHub()
	a, b := newFakeConn(), newFakeConn()
	h.Watch("b1", a)
	h.Watch("b1", a)
	h.Watch("b2", b)

	if n := h.Publish("b1", "battle.round", nil); n != 1 {
		t.Fatalf("published=%d", n)
	}
	if a.count() != 1 || b.count() != 0 {
		t.Fatalf("a=%d b=%d", a.count(), b.count())
	}
	if h.Publish("missing", "battle.round", nil) != 0 {
		t.Fatalf("unknown battle should have no watchers")
	}
}

func TestWatchHub_Unwatch(t *testing.T) {
	h := NewWatchHub()
	a := newFakeConn()
	h.Watch("b1", a)
	h.Watch("b2", a)
	h.Unwatch("b1", a)

	if h.Watchers("b1") != 0 || h.Watchers("b2") != 1 {
		t.Fatalf("b1=%d b2=%d", h.Watchers("b1"), h.Watchers("b2"))
	}
}

func TestWatchHub_连接关闭自动退订(t *testing.T) {
	h := NewWatchHub()
	a := newFakeConn()
	h.Watch("b1", a)
	h.Watch("b2", a)
	a.Close()

	deadline := time.Now().Add(2 * time.Second)
	for (h.Watchers("b1") != 0 || h.Watchers("b2") != 0) && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if h.Watchers("b1") != 0 || h.Watchers("b2") != 0 {
		t.Fatalf("watchers not cleaned up")
	}
	h.RLock()
	defer h.RUnlock()
	if len(h.conn2battles) != 0 || len(h.watched) != 0 {
		t.Fatalf("conn index leaked")
	}
}
