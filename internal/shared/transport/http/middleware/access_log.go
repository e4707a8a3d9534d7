package middleware

import (
	"DotWars/internal/shared/transport"
	"DotWars/modules/kit/logx"
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// 路径参数前一段 → 访问日志作用域字段，例如 /battles/:id → battle_id。
var scopeBySegment = map[string]string{
	"battles":   transport.ScopeBattleID,
	"worlds":    transport.ScopeWorldID,
	"factions":  transport.ScopeFactionID,
	"provinces": transport.ScopeProvinceID,
}

// envelopeWriter 旁路保存响应体，结束后读出 {"code": ...}。
type envelopeWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *envelopeWriter) Write(data []byte) (int, error) {
	_, _ = w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *envelopeWriter) WriteString(s string) (int, error) {
	_, _ = w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// AccessLog 每个管理请求一条访问日志：业务码取自响应信封，作用域取自路径参数和鉴权主体。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := transport.NewContextWithParent(c.Request.Context(), c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)

		ew := &envelopeWriter{ResponseWriter: c.Writer}
		c.Writer = ew

		c.Next()

		recordScope(c, route)
		transport.SetBizCode(ctx, transport.BizCode(envelopeCode(ew.body.Bytes(), c.Writer.Status())))
		transport.WriteAccessLog(ctx, log)
	}
}

func recordScope(c *gin.Context, route string) {
	ctx := c.Request.Context()
	if subject := c.GetString(ContextKeySubject); subject != "" {
		transport.SetScope(ctx, transport.ScopeSubject, subject)
	}
	segments := strings.Split(strings.Trim(route, "/"), "/")
	for i := 1; i < len(segments); i++ {
		name, isParam := strings.CutPrefix(segments[i], ":")
		if !isParam {
			continue
		}
		if key, ok := scopeBySegment[segments[i-1]]; ok {
			transport.SetScope(ctx, key, c.Param(name))
		}
	}
}

// envelopeCode 响应体没有 code 时按 HTTP 状态兜底。
func envelopeCode(body []byte, status int) int {
	if len(body) > 0 {
		var env struct {
			Code *int `json:"code"`
		}
		if err := json.Unmarshal(body, &env); err == nil && env.Code != nil {
			return *env.Code
		}
	}
	if status >= http.StatusBadRequest {
		return transport.SystemError
	}
	return transport.OK
}
