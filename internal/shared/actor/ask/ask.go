package ask

import (
	"DotWars/internal/shared/actor/messages"
	"DotWars/internal/shared/transport"
	"DotWars/modules/kit/errx"
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const DefaultTimeout = 3 * time.Second

// RuntimeError actor 投递本身失败（超时、pid 不可达），不是规则拒绝。
type RuntimeError struct {
	Code    int
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Request 阻塞等待 actor 回复并还原成具体类型；FailResp 原样还原成 error。
func Request[Resp any](root *protoactor.RootContext, pid *protoactor.PID, msg any, timeout time.Duration) (*Resp, error) {
	if root == nil {
		return nil, &RuntimeError{Code: transport.Unavailable, Message: "actor runtime 未初始化", Cause: errx.ErrUnavailable}
	}
	if pid == nil {
		return nil, &RuntimeError{Code: transport.Unavailable, Message: "actor pid 为空", Cause: errx.ErrUnavailable}
	}

	res, err := root.RequestFuture(pid, msg, timeout).Result()
	if err != nil {
		if errors.Is(err, protoactor.ErrTimeout) {
			return nil, &RuntimeError{
				Code:    transport.TimeoutError,
				Message: "actor 请求超时",
				Cause:   errx.ErrTimeout.WithCause(err),
			}
		}
		return nil, &RuntimeError{
			Code:    transport.Unavailable,
			Message: "actor 请求失败",
			Cause:   errx.ErrUnavailable.WithCause(err),
		}
	}

	switch v := res.(type) {
	case *messages.FailResp:
		return nil, v.Err
	case *Resp:
		return v, nil
	default:
		return nil, &RuntimeError{
			Code:    transport.SystemError,
			Message: "actor 响应类型不匹配",
			Cause:   errx.ErrInternal,
		}
	}
}

// Timeout 取 ctx 剩余时间和默认超时中较小的一个。
func Timeout(ctx context.Context, def time.Duration) time.Duration {
	if def <= 0 {
		def = DefaultTimeout
	}
	if ctx == nil {
		return def
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return def
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < def {
		return remain
	}
	return def
}

func CodeFromError(err error) int {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != 0 {
		return re.Code
	}
	return transport.CodeOf(err)
}
