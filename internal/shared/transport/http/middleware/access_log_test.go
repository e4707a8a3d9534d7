package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"DotWars/internal/shared/transport"
	"DotWars/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newAccessLogEngine(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	e := gin.New()
	e.Use(AccessLog(logx.NewZapLogger(zap.New(core))))
	e.Use(Auth(fixedVerifier{token: "good"}, nil))
	e.POST("/api/battles/:id/rounds", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": transport.RuleRejected, "msg": "战斗已结束"})
	})
	e.POST("/api/world/provinces/:id/owner", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": transport.OK})
	})
	return e, logs
}

func TestAccessLog_记录战斗id与鉴权主体(t *testing.T) {
	e, logs := newAccessLogEngine(t)
	req := httptest.NewRequest(http.MethodPost, "/api/battles/b-7/rounds", nil)
	req.Header.Set("Authorization", "Bearer good")
	e.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterField(zap.String("log_type", "access")).All()
	if len(entries) != 1 {
		t.Fatalf("entries=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["battle_id"] != "b-7" || fields["subject"] != "ops" {
		t.Fatalf("fields=%v", fields)
	}
	if fields["biz_code"] != int64(transport.RuleRejected) || fields["action"] != "POST /api/battles/:id/rounds" {
		t.Fatalf("fields=%v", fields)
	}
}

func TestAccessLog_省份路径记录province_id(t *testing.T) {
	e, logs := newAccessLogEngine(t)
	req := httptest.NewRequest(http.MethodPost, "/api/world/provinces/p-3/owner?token=good", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterField(zap.String("log_type", "access")).All()
	if len(entries) != 1 {
		t.Fatalf("entries=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["province_id"] != "p-3" || fields["result"] != "success" {
		t.Fatalf("fields=%v", fields)
	}
	if _, ok := fields["battle_id"]; ok {
		t.Fatalf("不应有 battle_id: %v", fields)
	}
}

func TestAccessLog_未授权时业务码为Unauthorized(t *testing.T) {
	e, logs := newAccessLogEngine(t)
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/battles/b-7/rounds", nil))

	entries := logs.FilterField(zap.String("log_type", "access")).All()
	if len(entries) != 1 {
		t.Fatalf("entries=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["biz_code"] != int64(transport.Unauthorized) || fields["error_reason"] != "UNAUTHORIZED" {
		t.Fatalf("fields=%v", fields)
	}
	if _, ok := fields["subject"]; ok {
		t.Fatalf("未授权不应有 subject")
	}
}

func TestEnvelopeCode(t *testing.T) {
	if got := envelopeCode([]byte(`{"code":4}`), http.StatusOK); got != transport.NotFound {
		t.Fatalf("got=%d", got)
	}
	if got := envelopeCode([]byte(`not json`), http.StatusInternalServerError); got != transport.SystemError {
		t.Fatalf("got=%d", got)
	}
	if got := envelopeCode(nil, http.StatusOK); got != transport.OK {
		t.Fatalf("got=%d", got)
	}
}
