package actor

import (
	"context"
	"errors"
	"testing"
	"time"

	"DotWars/internal/battle/actors"
	"DotWars/internal/battle/entity/domain"
	"DotWars/internal/battle/infra/persistence/memory"
	"DotWars/internal/battle/service"
	gd "DotWars/internal/game/domain"
	"DotWars/internal/shared/actor/ask"
	"DotWars/internal/shared/transport"
	"DotWars/internal/shared/utils"
)

func newTestRuntime(t *testing.T, idle time.Duration) (*Runtime, *memory.ReportRepository) {
	t.Helper()
	stop, err := service.CompileStopPolicy("Turn >= 50")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ids, err := utils.NewIDGenerator(3)
	if err != nil {
		t.Fatal(err)
	}
	repo := memory.NewReportRepository()
	rt := NewRuntime(nil, actors.Deps{
		Repo:             repo,
		Service:          service.NewBattleService(stop, nil),
		IDs:              ids,
		IdleAfterResolve: idle,
	}, time.Second)
	t.Cleanup(rt.Shutdown)
	return rt, repo
}

func deploy(t *testing.T, rt *Runtime, battleID string, faction gd.FactionID, ut domain.UnitType, size uint32) domain.Side {
	t.Helper()
	u := domain.NewUnit(faction, ut, size, 100)
	side, err := rt.Deploy(context.Background(), battleID, *u, domain.NewCombatStats(ut), gd.Position{})
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	return side
}

func TestRuntime_完整一场战斗并归档(t *testing.T) {
	rt, repo := newTestRuntime(t, time.Minute)
	ctx := context.Background()
	att, def := gd.NewFactionID(), gd.NewFactionID()

	id, err := rt.CreateBattle(ctx, att, def, domain.Battlefield{Width: 100, Height: 100})
	if err != nil || id == "" {
		t.Fatalf("id=%q err=%v", id, err)
	}
	if side := deploy(t, rt, id, att, domain.Artillery, 200); side != domain.SideAttacker {
		t.Fatalf("side=%v", side)
	}
	if side := deploy(t, rt, id, def, domain.Archers, 20); side != domain.SideDefender {
		t.Fatalf("side=%v", side)
	}

	if _, err := rt.RunRound(ctx, id); !errors.Is(err, gd.ErrInvalidPhaseTransition) {
		t.Fatalf("部署阶段不能开打, err=%v", err)
	}
	state, err := rt.BeginCombat(ctx, id)
	if err != nil || state.Battle.Phase != domain.PhaseCombat || len(state.Units) != 2 {
		t.Fatalf("state=%+v err=%v", state, err)
	}

	report, rounds, err := rt.RunToEnd(ctx, id, 100)
	if err != nil || report == nil {
		t.Fatalf("report=%v err=%v", report, err)
	}
	if len(rounds) == 0 || int(report.Turns) != len(rounds) {
		t.Fatalf("turns=%d rounds=%d", report.Turns, len(rounds))
	}
	if len(report.Units) != 2 {
		t.Fatalf("units=%d", len(report.Units))
	}

	saved, err := repo.Get(ctx, id)
	if err != nil || saved.BattleID != id {
		t.Fatalf("saved=%v err=%v", saved, err)
	}

	got, err := rt.GetBattle(ctx, id)
	if err != nil || got.Report == nil || got.Battle.Phase != domain.PhaseResolved {
		t.Fatalf("got=%+v err=%v", got, err)
	}
	if _, err := rt.RunRound(ctx, id); !errors.Is(err, gd.ErrBattleResolved) {
		t.Fatalf("err=%v", err)
	}

	list, err := rt.ListReports(ctx, 10)
	if err != nil || len(list) != 1 {
		t.Fatalf("list=%v err=%v", list, err)
	}
}

func TestRuntime_结束后回收actor_从战报库查询(t *testing.T) {
	rt, _ := newTestRuntime(t, 20*time.Millisecond)
	ctx := context.Background()
	att, def := gd.NewFactionID(), gd.NewFactionID()

	id, _ := rt.CreateBattle(ctx, att, def, domain.Battlefield{Width: 100, Height: 100})
	deploy(t, rt, id, att, domain.Infantry, 10)
	if _, err := rt.BeginCombat(ctx, id); err != nil {
		t.Fatalf("begin: %v", err)
	}
	// 防守方没有部队，第一轮即结束
	resp, err := rt.RunRound(ctx, id)
	if err != nil || resp.Report == nil || resp.Report.Winner == nil || *resp.Report.Winner != att {
		t.Fatalf("resp=%+v err=%v", resp, err)
	}

	time.Sleep(200 * time.Millisecond)

	got, err := rt.GetBattle(ctx, id)
	if err != nil || got.Report == nil || got.Report.BattleID != id {
		t.Fatalf("got=%+v err=%v", got, err)
	}
	if _, err := rt.BeginCombat(ctx, id); !errors.Is(err, gd.ErrBattleResolved) {
		t.Fatalf("err=%v", err)
	}
}

func TestRuntime_参数和不存在的战斗(t *testing.T) {
	rt, _ := newTestRuntime(t, time.Minute)
	ctx := context.Background()
	f := gd.NewFactionID()

	_, err := rt.CreateBattle(ctx, f, f, domain.Battlefield{})
	if ask.CodeFromError(err) != transport.ParamError {
		t.Fatalf("code=%d err=%v", ask.CodeFromError(err), err)
	}

	_, err = rt.GetBattle(ctx, "42")
	if !errors.Is(err, gd.ErrBattleNotFound) || ask.CodeFromError(err) != transport.NotFound {
		t.Fatalf("err=%v", err)
	}

	id, _ := rt.CreateBattle(ctx, f, gd.NewFactionID(), domain.Battlefield{})
	stranger := domain.NewUnit(gd.NewFactionID(), domain.Infantry, 10, 100)
	_, err = rt.Deploy(ctx, id, *stranger, domain.NewCombatStats(domain.Infantry), gd.Position{})
	if !errors.Is(err, gd.ErrInvalidUnit) {
		t.Fatalf("err=%v", err)
	}
}
