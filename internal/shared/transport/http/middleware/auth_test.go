package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"DotWars/internal/shared/transport"

	"github.com/gin-gonic/gin"
)

type fixedVerifier struct{ token string }

func (v fixedVerifier) Verify(token string) (string, error) {
	if token != v.token {
		return "", errors.New("bad token")
	}
	return "ops", nil
}

func newAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(Auth(fixedVerifier{token: "good"}, nil))
	e.GET("/x", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": transport.OK, "data": c.GetString(ContextKeySubject)})
	})
	return e
}

func decodeCode(t *testing.T, w *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var body struct {
		Code int    `json:"code"`
		Data string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body=%s err=%v", w.Body.String(), err)
	}
	return body.Code, body.Data
}

func TestAuth_Bearer头(t *testing.T) {
	e := newAuthEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer good")
	e.ServeHTTP(w, req)

	code, sub := decodeCode(t, w)
	if code != transport.OK || sub != "ops" {
		t.Fatalf("code=%d sub=%q", code, sub)
	}
}

func TestAuth_查询参数(t *testing.T) {
	e := newAuthEngine()
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?token=good", nil))

	if code, _ := decodeCode(t, w); code != transport.OK {
		t.Fatalf("code=%d", code)
	}
}

func TestAuth_缺少或错误token(t *testing.T) {
	e := newAuthEngine()
	for _, target := range []string{"/x", "/x?token=bad"} {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
		if code, _ := decodeCode(t, w); code != transport.Unauthorized {
			t.Fatalf("target=%s code=%d", target, code)
		}
	}
}
