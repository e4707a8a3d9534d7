package transport

import (
	"DotWars/modules/kit/logx"
	"DotWars/modules/kit/tracex"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// 访问日志里记录的作用域字段，按此顺序输出。
const (
	ScopeSubject    = "subject"
	ScopeWorldID    = "world_id"
	ScopeBattleID   = "battle_id"
	ScopeFactionID  = "faction_id"
	ScopeProvinceID = "province_id"
)

var scopeOrder = []string{ScopeSubject, ScopeWorldID, ScopeBattleID, ScopeFactionID, ScopeProvinceID}

// AccessLog 一次管理请求（HTTP 或 WS 消息）的访问日志上下文。
type AccessLog struct {
	BizCode     BizCode
	ErrorReason string
	startTime   time.Time
	action      string
	scope       map[string]string
}

type accessLogKey struct{}

// NewContextWithParent 创建带 AccessLog 的新 context，保留父 context 的取消信号。
// action 以 "WS " 开头时 span 记为 ws，否则为 http。
func NewContextWithParent(parent context.Context, action string) context.Context {
	ctx := parent
	if ctx == nil {
		ctx = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	if traceID := tracex.NewTraceID(); traceID != "" {
		ctx = tracex.WithTraceID(ctx, traceID)
	}
	span := "http"
	if strings.HasPrefix(action, "WS ") {
		span = "ws"
	}
	ctx = tracex.WithSpanID(ctx, span)

	al := &AccessLog{
		BizCode:   BizCode(SystemError),
		startTime: time.Now(),
		action:    action,
	}
	return context.WithValue(ctx, accessLogKey{}, al)
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.BizCode = code
	}
}

// SetErrorReason 失败场景的原因码。
func SetErrorReason(ctx context.Context, reason string) {
	if reason == "" {
		return
	}
	if al := FromContext(ctx); al != nil {
		al.ErrorReason = reason
	}
}

// SetScope 记录请求作用的世界、战斗、阵营或省份。空值忽略，后写覆盖。
func SetScope(ctx context.Context, key, value string) {
	if key == "" || value == "" {
		return
	}
	al := FromContext(ctx)
	if al == nil {
		return
	}
	if al.scope == nil {
		al.scope = make(map[string]string, 2)
	}
	al.scope[key] = value
}

// Scope 返回已记录作用域的拷贝。
func (al *AccessLog) Scope() map[string]string {
	if al == nil || len(al.scope) == 0 {
		return nil
	}
	out := make(map[string]string, len(al.scope))
	for k, v := range al.scope {
		out[k] = v
	}
	return out
}

// WriteAccessLog 输出访问日志，由 HTTP 中间件和 WS 路由在请求结束时调用。
func WriteAccessLog(ctx context.Context, log logx.Logger) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}

	fields := []zap.Field{
		zap.Duration("latency", time.Since(al.startTime)),
	}
	for _, k := range scopeOrder {
		if v, ok := al.scope[k]; ok {
			fields = append(fields, zap.String(k, v))
		}
	}
	if al.BizCode == BizCode(OK) {
		fields = append(fields, zap.String("result", "success"))
	} else {
		fields = append(fields, zap.String("result", "failure"))
		if al.ErrorReason != "" {
			fields = append(fields, zap.String("error_reason", al.ErrorReason))
		}
	}
	logx.ReportAccessWithLoggerContext(ctx, log, al.action, int(al.BizCode), fields...)
}
