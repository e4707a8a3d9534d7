package transport

import (
	"net/http"
	"strings"
)

// TokenVerifier 校验管理接口 token，返回 token 的 subject。
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// BearerToken 依次从 Authorization: Bearer 头和 token 查询参数取 token。
// 浏览器建 websocket 连接时带不了自定义头，只能走查询参数。
func BearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	if h := r.Header.Get("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	return r.URL.Query().Get("token")
}
