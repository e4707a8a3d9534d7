package middleware

import (
	"DotWars/internal/shared/transport"
	"DotWars/modules/kit/logx"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextKeySubject gin.Context 里鉴权通过后的 token subject。
const ContextKeySubject = "subject"

// Auth 校验 Bearer token，失败时 HTTP 200 + {"code": Unauthorized}，与其它业务错误一致。
func Auth(v transport.TokenVerifier, log logx.Logger) gin.HandlerFunc {
	if log == nil {
		log = logx.Nop()
	}
	return func(c *gin.Context) {
		subject, err := v.Verify(transport.BearerToken(c.Request))
		if err != nil {
			transport.SetErrorReason(c.Request.Context(), "UNAUTHORIZED")
			log.WithContext(c.Request.Context()).Warn("auth rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{
				"code": transport.Unauthorized,
				"msg":  "未授权",
			})
			return
		}
		c.Set(ContextKeySubject, subject)
		c.Next()
	}
}
