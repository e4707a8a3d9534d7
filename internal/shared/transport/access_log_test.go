package transport

import (
	"context"
	"testing"

	"DotWars/modules/kit/logx"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAccessLog_作用域字段写入日志(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logx.NewZapLogger(zap.New(core))

	ctx := NewContextWithParent(context.Background(), "POST /api/battles/:id/rounds")
	SetScope(ctx, ScopeBattleID, "b-42")
	SetScope(ctx, ScopeFactionID, "")
	SetScope(ctx, ScopeSubject, "ops")
	SetBizCode(ctx, BizCode(RuleRejected))
	SetErrorReason(ctx, "BATTLE_RESOLVED")
	WriteAccessLog(ctx, log)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["battle_id"] != "b-42" || fields["subject"] != "ops" {
		t.Fatalf("fields=%v", fields)
	}
	if _, ok := fields["faction_id"]; ok {
		t.Fatalf("空值不应记录: %v", fields)
	}
	if fields["result"] != "failure" || fields["error_reason"] != "BATTLE_RESOLVED" || fields["action"] != "POST /api/battles/:id/rounds" {
		t.Fatalf("fields=%v", fields)
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("规则拒绝应为 WARN, got=%v", entries[0].Level)
	}
}

func TestAccessLog_Scope返回拷贝(t *testing.T) {
	ctx := NewContextWithParent(nil, "WS battle.get")
	SetScope(ctx, ScopeWorldID, "w-1")
	got := FromContext(ctx).Scope()
	got[ScopeWorldID] = "mutated"
	if FromContext(ctx).Scope()[ScopeWorldID] != "w-1" {
		t.Fatalf("Scope 应返回拷贝")
	}
	if FromContext(context.Background()).Scope() != nil {
		t.Fatalf("没有 AccessLog 时应为 nil")
	}
}
