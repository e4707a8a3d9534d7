package handler

import (
	"DotWars/internal/shared/actor/ask"
	"DotWars/internal/shared/transport"
	"DotWars/modules/kit/errx"
	"DotWars/modules/kit/logx"
	"context"
	"errors"
)

const busyMessage = "系统繁忙，请稍后重试"

// HandleError 把错误转成对外业务码和提示，并按错误类型打一次日志。
// 规则拒绝打 INFO，技术错误打 ERROR 带栈。
func HandleError(ctx context.Context, log logx.Logger, action string, err error) (int, string) {
	code := ask.CodeFromError(err)

	var e *errx.Error
	if errors.As(err, &e) && e.IsBiz() {
		transport.SetErrorReason(ctx, e.CodeText())
		logx.ReportBizWithLoggerContext(ctx, log, logx.NewBizLog(action, e.CodeText(), e.Msg()))
		return code, e.Msg()
	}

	if e != nil {
		transport.SetErrorReason(ctx, e.CodeText())
	}
	logx.ReportSysErrorWithLoggerContext(ctx, log, logx.NewSysLog(action, err))
	return code, busyMessage
}
