package ws

import (
	"DotWars/internal/shared/transport"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type fixedVerifier struct{ token string }

func (v fixedVerifier) Verify(token string) (string, error) {
	if token != v.token {
		return "", errors.New("bad token")
	}
	return "ops", nil
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req ReqBody) RespBody {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var resp RespBody
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	return resp
}

func TestServer_请求响应与推送(t *testing.T) {
	r := NewRouter(nil)
	r.Group("test").Handle("whoami", func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp) {
		req.Conn.Push("test.pushed", "hello")
		resp.Body.Code = transport.OK
		resp.Body.Msg = req.Conn.GetProperty(ConnKeySubject)
	})
	s := NewServer(r, nil, WithVerifier(fixedVerifier{token: "t1"}))
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dial(t, srv, "/?token=t1")

	if err := conn.WriteJSON(ReqBody{Seq: 3, Name: "test.whoami"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var pushed, resp RespBody
	if err := conn.ReadJSON(&pushed); err != nil {
		t.Fatalf("read push: %v", err)
	}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read resp: %v", err)
	}
	if pushed.Name != "test.pushed" || pushed.Seq != 0 || pushed.Msg != "hello" {
		t.Fatalf("pushed=%+v", pushed)
	}
	if resp.Seq != 3 || resp.Code != transport.OK || resp.Msg != "ops" {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestServer_心跳(t *testing.T) {
	srv := httptest.NewServer(NewServer(NewRouter(nil), nil))
	defer srv.Close()
	conn := dial(t, srv, "")

	resp := roundTrip(t, conn, ReqBody{Seq: 1, Name: HeartbeatMsg, Msg: map[string]any{"ctime": 100}})
	m, ok := resp.Msg.(map[string]any)
	if !ok || resp.Code != transport.OK {
		t.Fatalf("resp=%+v", resp)
	}
	if m["ctime"].(float64) != 100 || m["stime"].(float64) <= 0 {
		t.Fatalf("heartbeat=%v", m)
	}
}

func TestServer_非法JSON返回参数错误(t *testing.T) {
	srv := httptest.NewServer(NewServer(NewRouter(nil), nil))
	defer srv.Close()
	conn := dial(t, srv, "")

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var resp RespBody
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Code != transport.ParamError {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestServer_token不对拒绝升级(t *testing.T) {
	srv := httptest.NewServer(NewServer(NewRouter(nil), nil, WithVerifier(fixedVerifier{token: "t1"})))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?token=nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("resp=%v", resp)
	}
}

func TestServer_CloseAll(t *testing.T) {
	s := NewServer(NewRouter(nil), nil)
	srv := httptest.NewServer(s)
	defer srv.Close()
	conn := dial(t, srv, "")

	// 等连接登记
	deadline := time.Now().Add(2 * time.Second)
	for s.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.Len() != 1 {
		t.Fatalf("len=%d", s.Len())
	}
	s.CloseAll()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected closed connection")
	}
}
