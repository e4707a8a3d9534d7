package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"DotWars/internal/battle/entity"
	"DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
)

type fixture struct {
	svc    *BattleService
	battle *domain.Battle
	reg    *UnitRegistry
}

func newFixture(t *testing.T, rule string) *fixture {
	t.Helper()
	stop, err := CompileStopPolicy(rule)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return &fixture{
		svc:    NewBattleService(stop, nil),
		battle: domain.NewBattle("b-1", gd.NewFactionID(), gd.NewFactionID(), domain.Battlefield{Width: 1000, Height: 1000}),
		reg:    NewUnitRegistry(),
	}
}

func (f *fixture) deploy(t *testing.T, side domain.Side, ut domain.UnitType, size uint32, pos gd.Position) *domain.Unit {
	t.Helper()
	faction := f.battle.Attacker
	if side == domain.SideDefender {
		faction = f.battle.Defender
	}
	u := domain.NewUnit(faction, ut, size, 100)
	if _, err := f.svc.Deploy(f.battle, f.reg, u, domain.NewCombatStats(ut), pos); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	return u
}

func TestRunRound_部署阶段不能开打(t *testing.T) {
	f := newFixture(t, "")
	f.deploy(t, domain.SideAttacker, domain.Infantry, 100, gd.Position{})
	if _, err := f.svc.RunRound(context.Background(), f.battle, f.reg); !errors.Is(err, gd.ErrInvalidPhaseTransition) {
		t.Fatalf("err=%v", err)
	}
}

func TestDeploy_阵营不匹配拒绝(t *testing.T) {
	f := newFixture(t, "")
	stranger := domain.NewUnit(gd.NewFactionID(), domain.Infantry, 10, 100)
	if _, err := f.svc.Deploy(f.battle, f.reg, stranger, domain.NewCombatStats(domain.Infantry), gd.Position{}); !errors.Is(err, gd.ErrInvalidUnit) {
		t.Fatalf("err=%v", err)
	}
	if f.reg.Len() != 0 {
		t.Fatalf("不应登记")
	}
}

func TestDeploy_士气越界拒绝(t *testing.T) {
	f := newFixture(t, "")
	nan := float32(math.NaN())
	for _, morale := range []float32{-1, domain.MaxMorale + 0.5, 1000, nan} {
		u := domain.NewUnit(f.battle.Attacker, domain.Infantry, 100, 100)
		u.Morale = morale
		if _, err := f.svc.Deploy(f.battle, f.reg, u, domain.NewCombatStats(domain.Infantry), gd.Position{}); !errors.Is(err, gd.ErrInvalidUnit) {
			t.Fatalf("morale=%v err=%v", morale, err)
		}
	}
	if f.reg.Len() != 0 || len(f.battle.AttackerUnits) != 0 {
		t.Fatalf("越界士气不应登记")
	}
	// 边界值可以部署
	f.deploy(t, domain.SideAttacker, domain.Infantry, 100, gd.Position{})
	edge := domain.NewUnit(f.battle.Attacker, domain.Infantry, 100, 0)
	if _, err := f.svc.Deploy(f.battle, f.reg, edge, domain.NewCombatStats(domain.Infantry), gd.Position{}); err != nil {
		t.Fatalf("morale=0 err=%v", err)
	}
}

func TestDeploy_已部署部队换边拒绝(t *testing.T) {
	f := newFixture(t, "")
	att := f.deploy(t, domain.SideAttacker, domain.Infantry, 100, gd.Position{})
	f.deploy(t, domain.SideDefender, domain.Infantry, 100, gd.Position{})

	turncoat := domain.NewUnit(f.battle.Defender, domain.Infantry, 100, 100)
	turncoat.ID = att.ID
	if _, err := f.svc.Deploy(f.battle, f.reg, turncoat, domain.NewCombatStats(domain.Infantry), gd.Position{}); !errors.Is(err, gd.ErrInvalidUnit) {
		t.Fatalf("err=%v", err)
	}
	if len(f.battle.AttackerUnits) != 1 || len(f.battle.DefenderUnits) != 1 {
		t.Fatalf("attackers=%d defenders=%d", len(f.battle.AttackerUnits), len(f.battle.DefenderUnits))
	}
	// 登记表里仍是原来的攻方部队
	if u, ok := f.reg.Unit(att.ID); !ok || u != att {
		t.Fatalf("登记表被覆盖")
	}

	if err := f.battle.BeginCombat(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	rep, err := f.svc.RunRound(context.Background(), f.battle, f.reg)
	if err != nil {
		t.Fatalf("round: %v", err)
	}
	for _, s := range rep.Strikes {
		if s.Attacker == s.Target {
			t.Fatalf("部队打了自己: %+v", s)
		}
	}
}

func TestRunRound_一轮结算并累加回合(t *testing.T) {
	f := newFixture(t, "")
	att := f.deploy(t, domain.SideAttacker, domain.Cavalry, 100, gd.Position{})
	def := f.deploy(t, domain.SideDefender, domain.Infantry, 100, gd.Position{})
	if err := f.battle.BeginCombat(); err != nil {
		t.Fatalf("begin: %v", err)
	}

	rep, err := f.svc.RunRound(context.Background(), f.battle, f.reg)
	if err != nil {
		t.Fatalf("round: %v", err)
	}
	if rep.Turn != 1 || f.battle.Turn != 1 {
		t.Fatalf("turn=%d", rep.Turn)
	}
	if len(rep.Strikes) != 2 {
		t.Fatalf("strikes=%d", len(rep.Strikes))
	}
	// 骑兵楔形 20*1.3=26 对横队步兵 12*1.0 → 14
	first := rep.Strikes[0]
	if first.Attacker != att.ID || first.Target != def.ID || first.Formation != domain.FormationWedge || first.Damage != 13 && first.Damage != 14 {
		t.Fatalf("first=%+v", first)
	}
	// 步兵看到骑兵改结方阵，15*0.6=9 对楔形骑兵 8*0.8=6.4 → 2
	second := rep.Strikes[1]
	if second.Formation != domain.FormationSquare || second.Damage != 2 {
		t.Fatalf("second=%+v", second)
	}
	if att.Count != 98 || def.Count != 100-first.Damage {
		t.Fatalf("att=%d def=%d", att.Count, def.Count)
	}
	if rep.Resolved || f.battle.Phase != domain.PhaseCombat {
		t.Fatalf("不应结束")
	}
}

func TestRunRound_一方全灭后结束且不能再打(t *testing.T) {
	f := newFixture(t, "")
	f.deploy(t, domain.SideAttacker, domain.Artillery, 100, gd.Position{})
	weak := f.deploy(t, domain.SideDefender, domain.Archers, 10, gd.Position{})
	_ = f.battle.BeginCombat()

	rep, err := f.svc.RunRound(context.Background(), f.battle, f.reg)
	if err != nil {
		t.Fatalf("round: %v", err)
	}
	if weak.Count != 0 || !rep.Resolved || rep.Winner == nil || *rep.Winner != f.battle.Attacker {
		t.Fatalf("rep=%+v weak=%+v", rep, weak)
	}
	if rep.Reason != entity.ReasonDefenderEliminated {
		t.Fatalf("reason=%s", rep.Reason)
	}
	if len(rep.Strikes) != 1 {
		t.Fatalf("守方全灭后不应再出手, strikes=%d", len(rep.Strikes))
	}
	if _, err := f.svc.RunRound(context.Background(), f.battle, f.reg); !errors.Is(err, gd.ErrBattleResolved) {
		t.Fatalf("err=%v", err)
	}

	report, err := f.svc.Conclude(f.battle, f.reg, rep, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("conclude: %v", err)
	}
	if len(report.Units) != 2 || f.reg.Len() != 0 || report.Turns != 1 {
		t.Fatalf("report=%+v", report)
	}
}

func TestRunRound_停战规则生效(t *testing.T) {
	f := newFixture(t, "Turn >= 2")
	f.deploy(t, domain.SideAttacker, domain.Infantry, 1000, gd.Position{})
	f.deploy(t, domain.SideDefender, domain.Infantry, 1000, gd.Position{})
	_ = f.battle.BeginCombat()

	rep, _ := f.svc.RunRound(context.Background(), f.battle, f.reg)
	if rep.Resolved {
		t.Fatalf("第一轮不应结束")
	}
	rep, err := f.svc.RunRound(context.Background(), f.battle, f.reg)
	if err != nil {
		t.Fatalf("round: %v", err)
	}
	if !rep.Resolved || rep.Reason != entity.ReasonStopRule || rep.Winner != nil {
		t.Fatalf("rep=%+v", rep)
	}
}

func TestApplyTerrain(t *testing.T) {
	base := domain.CombatStats{Attack: 10, Defense: 10}
	got := ApplyTerrain(base, []domain.TerrainEffect{
		{EffectType: domain.HighGround(0.5)},
		{EffectType: domain.Fortification(1, 0.5)},
		{EffectType: domain.Forest(0.25)},
		{EffectType: domain.River(3)},
	})
	want := domain.CombatStats{Attack: 15, Defense: 30, Evasion: 0.25}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
	if base.Defense != 10 {
		t.Fatalf("不应修改原属性")
	}
}

func TestStopPolicy(t *testing.T) {
	if _, err := CompileStopPolicy("Turn +"); err == nil {
		t.Fatalf("非法表达式应报错")
	}
	if _, err := CompileStopPolicy("Turn"); err == nil {
		t.Fatalf("非布尔表达式应报错")
	}
	p, err := CompileStopPolicy("AttackerSoldiers < DefenderSoldiers / 2 || Turn > 10")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	stop, err := p.ShouldStop(StopEnv{Turn: 1, AttackerSoldiers: 10, DefenderSoldiers: 100})
	if err != nil || !stop {
		t.Fatalf("stop=%v err=%v", stop, err)
	}
	var nilPolicy *StopPolicy
	if stop, _ := nilPolicy.ShouldStop(StopEnv{Turn: 1000}); stop {
		t.Fatalf("nil 策略永远不停")
	}
}
