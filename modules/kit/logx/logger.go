package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是模拟服务各层共用的最小日志接口。
//
// 约束：
// - 只承载结构化字段 + ctx 透传（trace/span）
// - domain 层不依赖它，只有 service/actor/接口层使用
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	WithContext(ctx context.Context) Logger
}

// Nop 返回丢弃所有输出的 Logger，测试和未初始化场景使用。
func Nop() Logger {
	return NewZapLogger(nil)
}
