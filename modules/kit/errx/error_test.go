package errx

import (
	"errors"
	"testing"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := NewBiz("ECONOMY_X", "x").WithData("faction_id", "a").WithCause(errors.New("cause1"))
	e2 := NewBiz("ECONOMY_X", "x2").WithData("faction_id", "b")
	if !errors.Is(e1, e2) {
		t.Fatalf("期望 errors.Is(e1, e2)==true，e1=%v e2=%v", e1, e2)
	}
	if errors.Is(e1, NewBiz("ECONOMY_Y", "x")) {
		t.Fatalf("不同 code 不应被视为同一语义")
	}
}

func TestError_业务错误不捕获栈_但保留cause链(t *testing.T) {
	cause := errors.New("treasury locked")
	err := NewBiz("ECONOMY_INSUFFICIENT_FUNDS", "资源不足").WithCause(cause)
	if got := err.Stack(); got != nil {
		t.Fatalf("期望业务错误不捕获栈，got=%v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链不丢，err=%v", err)
	}
	if !err.IsBiz() {
		t.Fatalf("期望 IsBiz()==true")
	}
}

func TestError_系统错误捕获一次栈_且不重复捕获(t *testing.T) {
	sys := ErrUnavailable.WithCause(errors.New("mongo timeout"))
	if got := sys.Stack(); len(got) == 0 {
		t.Fatalf("期望系统错误捕获栈")
	}
	sys2 := ErrInternal.WithCause(sys)
	if got := sys2.Stack(); got != nil {
		t.Fatalf("期望上层系统错误不重复捕获栈，got=%v", got)
	}
}

func TestError_哨兵错误不被派生污染(t *testing.T) {
	_ = ErrUnavailable.WithData("store", "mongo")
	if ErrUnavailable.Data() != nil {
		t.Fatalf("期望哨兵错误 data 保持为空，got=%v", ErrUnavailable.Data())
	}
}

func TestError_Data_防止外部map污染(t *testing.T) {
	m := map[string]any{"k": "v"}
	err := NewBiz("BIZ_X", "").WithDataMap(m)
	m["k"] = "mutated"
	if got := err.Data()["k"]; got != "v" {
		t.Fatalf("期望构造时复制 data，got=%v", got)
	}
}

type testReason string

func (r testReason) ReasonCode() string { return string(r) }

func TestError_WithReason(t *testing.T) {
	err := NewBiz("BATTLE_X", "x").WithReason(testReason("NO_ACTIVE_UNITS"))
	if err.Reason() != "NO_ACTIVE_UNITS" {
		t.Fatalf("reason=%q", err.Reason())
	}
}
