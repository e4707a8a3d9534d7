package service

import (
	"context"
	"time"

	"DotWars/internal/battle/entity"
	"DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
	"DotWars/modules/kit/logx"

	"go.uber.org/zap"
)

// Strike 一次攻击的结算结果。
type Strike struct {
	Attacker     gd.UnitID        `json:"attacker"`
	Target       gd.UnitID        `json:"target"`
	Side         domain.Side      `json:"side"`
	Formation    domain.Formation `json:"formation"`
	Damage       uint32           `json:"damage"`
	Casualties   uint32           `json:"casualties"`
	MoraleBefore float32          `json:"morale_before"`
	MoraleAfter  float32          `json:"morale_after"`
	Routed       bool             `json:"routed"`
}

// RoundReport 一轮战斗的汇总。
type RoundReport struct {
	BattleID string        `json:"battle_id"`
	Turn     uint32        `json:"turn"`
	Strikes  []Strike      `json:"strikes"`
	Resolved bool          `json:"resolved"`
	Winner   *gd.FactionID `json:"winner,omitempty"`
	Reason   string        `json:"reason,omitempty"`
}

// BattleService 战斗循环驱动：部署、逐轮结算、结束后归档。
type BattleService struct {
	combat *CombatSystem
	ai     *BattleAI
	stop   *StopPolicy
	log    logx.Logger
}

func NewBattleService(stop *StopPolicy, log logx.Logger) *BattleService {
	if log == nil {
		log = logx.Nop()
	}
	return &BattleService{combat: CS, ai: AI, stop: stop, log: log}
}

// Deploy 部署阶段把部队交给战斗，部队阵营必须是该方阵营。
func (s *BattleService) Deploy(b *domain.Battle, reg *UnitRegistry, u *domain.Unit, stats domain.CombatStats, pos gd.Position) (domain.Side, error) {
	if b.IsResolved() {
		return 0, gd.ErrBattleResolved.WithData("battle_id", b.ID)
	}
	if u == nil {
		return 0, gd.ErrInvalidUnit
	}
	side, ok := b.SideOf(u.Faction)
	if !ok {
		return 0, gd.ErrInvalidUnit.
			WithData("battle_id", b.ID).
			WithData("faction_id", u.Faction.String())
	}
	if b.Phase != domain.PhaseDeployment {
		return 0, gd.ErrInvalidPhaseTransition.WithData("battle_id", b.ID)
	}
	// 同一支部队不能换边，否则会出现在两方名单里
	if cur, ok := b.SideOfUnit(u.ID); ok && cur != side {
		return 0, gd.ErrInvalidUnit.
			WithData("battle_id", b.ID).
			WithData("unit_id", u.ID.String())
	}
	if err := reg.Add(u, stats, pos); err != nil {
		return 0, err
	}
	if err := b.Deploy(side, u.ID); err != nil {
		reg.Remove(u.ID)
		return 0, err
	}
	return side, nil
}

// RunRound 进行一轮战斗：攻方先手，每支可战部队选阵型、选目标、结算伤害与溃散。
// 一轮结束后 Turn+1；任一方没有可战部队或停战规则成立时战斗结束。
func (s *BattleService) RunRound(ctx context.Context, b *domain.Battle, reg *UnitRegistry) (*RoundReport, error) {
	switch b.Phase {
	case domain.PhaseResolved:
		return nil, gd.ErrBattleResolved.WithData("battle_id", b.ID)
	case domain.PhaseDeployment:
		return nil, gd.ErrInvalidPhaseTransition.
			WithData("battle_id", b.ID).
			WithData("phase", b.Phase.String())
	}

	report := &RoundReport{BattleID: b.ID}
	for _, side := range []domain.Side{domain.SideAttacker, domain.SideDefender} {
		enemySide := domain.SideDefender
		if side == domain.SideDefender {
			enemySide = domain.SideAttacker
		}
		for _, id := range b.Units(side) {
			if !reg.IsActive(id) {
				continue
			}
			enemies := reg.Active(b.Units(enemySide))
			if len(enemies) == 0 {
				break
			}
			if st, ok := s.strike(b, reg, id, side, enemies); ok {
				report.Strikes = append(report.Strikes, st)
			}
		}
	}
	b.CompleteRound()
	report.Turn = b.Turn

	if err := s.settle(b, reg, report); err != nil {
		return report, err
	}
	s.log.WithContext(ctx).Debug("battle round finished",
		zap.String("battle_id", b.ID),
		zap.Uint32("turn", b.Turn),
		zap.Int("strikes", len(report.Strikes)),
		zap.Bool("resolved", report.Resolved),
	)
	return report, nil
}

func (s *BattleService) strike(b *domain.Battle, reg *UnitRegistry, id gd.UnitID, side domain.Side, enemies []*domain.Unit) (Strike, bool) {
	u, _ := reg.Unit(id)
	u.Formation = s.ai.ChooseFormation(u.UnitType, enemies)
	targetID, ok := s.ai.ChooseTarget(u, enemies)
	if !ok {
		return Strike{}, false
	}
	target, _ := reg.Unit(targetID)

	as, _ := reg.Stats(id)
	ds, _ := reg.Stats(targetID)
	as = ApplyTerrain(as, b.Battlefield.EffectsAt(reg.Position(id)))
	ds = ApplyTerrain(ds, b.Battlefield.EffectsAt(reg.Position(targetID)))

	damage := s.combat.CalculateDamage(u, as, target, ds)
	before := target.Count
	moraleBefore := target.Morale
	s.combat.ApplyCasualties(target, damage)
	routed := s.combat.CheckRout(target)
	if routed {
		reg.MarkRouted(targetID)
	}
	return Strike{
		Attacker:     id,
		Target:       targetID,
		Side:         side,
		Formation:    u.Formation,
		Damage:       damage,
		Casualties:   before - target.Count,
		MoraleBefore: moraleBefore,
		MoraleAfter:  target.Morale,
		Routed:       routed,
	}, true
}

func (s *BattleService) settle(b *domain.Battle, reg *UnitRegistry, report *RoundReport) error {
	attackers := reg.Active(b.AttackerUnits)
	defenders := reg.Active(b.DefenderUnits)

	switch {
	case len(attackers) == 0 && len(defenders) == 0:
		report.Reason = entity.ReasonMutualDestruction
	case len(attackers) == 0:
		report.Reason = entity.ReasonAttackerEliminated
		w := b.Defender
		report.Winner = &w
	case len(defenders) == 0:
		report.Reason = entity.ReasonDefenderEliminated
		w := b.Attacker
		report.Winner = &w
	default:
		stop, err := s.stop.ShouldStop(buildStopEnv(b, attackers, defenders))
		if err != nil {
			return err
		}
		if !stop {
			return nil
		}
		report.Reason = entity.ReasonStopRule
	}
	if err := b.Resolve(); err != nil {
		return err
	}
	report.Resolved = true
	return nil
}

// Conclude 战斗结束后生成归档，并把部队从登记表里全部取出交还调用方。
func (s *BattleService) Conclude(b *domain.Battle, reg *UnitRegistry, last *RoundReport, now time.Time) (*entity.BattleReport, error) {
	if !b.IsResolved() {
		return nil, gd.ErrInvalidPhaseTransition.
			WithData("battle_id", b.ID).
			WithData("phase", b.Phase.String())
	}
	r := &entity.BattleReport{
		BattleID:   b.ID,
		Attacker:   b.Attacker,
		Defender:   b.Defender,
		Turns:      b.Turn,
		Battle:     *b,
		ResolvedAt: now,
	}
	if last != nil {
		r.Winner = last.Winner
		r.Reason = last.Reason
	}
	for _, side := range []domain.Side{domain.SideAttacker, domain.SideDefender} {
		for _, id := range b.Units(side) {
			routed := reg.IsRouted(id)
			u, stats, ok := reg.Remove(id)
			if !ok {
				continue
			}
			r.Units = append(r.Units, entity.UnitOutcome{Unit: *u, Stats: stats, Side: side, Routed: routed})
		}
	}
	return r, nil
}

func buildStopEnv(b *domain.Battle, attackers, defenders []*domain.Unit) StopEnv {
	env := StopEnv{
		Turn:           int(b.Turn),
		AttackerActive: len(attackers),
		DefenderActive: len(defenders),
	}
	env.AttackerSoldiers, env.AttackerMorale = sumSide(attackers)
	env.DefenderSoldiers, env.DefenderMorale = sumSide(defenders)
	return env
}

func sumSide(units []*domain.Unit) (soldiers int, avgMorale float64) {
	if len(units) == 0 {
		return 0, 0
	}
	var morale float64
	for _, u := range units {
		soldiers += int(u.Count)
		morale += float64(u.Morale)
	}
	return soldiers, morale / float64(len(units))
}

// ApplyTerrain 返回叠加地形效果后的属性副本：
// 高地与工事按比例提高防御，工事提高攻击，森林提高闪避，河流不影响战斗属性。
func ApplyTerrain(stats domain.CombatStats, effects []domain.TerrainEffect) domain.CombatStats {
	for _, e := range effects {
		t := e.EffectType
		switch t.Kind {
		case domain.EffectHighGround:
			stats.Defense *= 1 + t.DefenseBonus
		case domain.EffectFortification:
			stats.Defense *= 1 + t.DefenseBonus
			stats.Attack *= 1 + t.AttackBonus
		case domain.EffectForest:
			stats.Evasion += t.Concealment
		case domain.EffectRiver:
		}
	}
	return stats
}
