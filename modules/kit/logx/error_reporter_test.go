package logx

import (
	"errors"
	"testing"

	"DotWars/modules/kit/errx"
)

func TestBuildErrorLog_能提取语义与栈(t *testing.T) {
	cause := errors.New("mongo down")
	e := errx.NewSys("SYS_INTERNAL", "内部错误").
		WithData("world_id", 1).
		WithCause(cause)

	meta := BuildErrorLog(e)
	if meta.Error == "" || meta.Code == "" || meta.Msg == "" {
		t.Fatalf("期望 Error/Code/Msg 非空, got=%+v", meta)
	}
	if meta.Data == nil || meta.Data["world_id"] != 1 {
		t.Fatalf("期望 meta.Data 包含 world_id=1, got=%v", meta.Data)
	}
	if len(meta.CauseChain) != 1 {
		t.Fatalf("期望 cause 链长度为 1, got=%v", meta.CauseChain)
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("期望 meta.Origin/meta.Stack 非空 origin=%q stack=%q", meta.Origin, meta.Stack)
	}
}

func TestBuildErrorLog_业务错误没有栈(t *testing.T) {
	e := errx.NewBiz("ECONOMY_INSUFFICIENT_FUNDS", "资源不足").WithData("reason", "GOLD")
	meta := BuildErrorLog(e)
	if meta.Stack != "" {
		t.Fatalf("业务错误不应带栈, got=%q", meta.Stack)
	}
	if meta.Reason != "GOLD" {
		t.Fatalf("reason=%q", meta.Reason)
	}
}

func TestBuildErrorLog_nil(t *testing.T) {
	if got := BuildErrorLog(nil); got.Error != "" {
		t.Fatalf("got=%+v", got)
	}
}
