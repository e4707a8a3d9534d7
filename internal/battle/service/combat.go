package service

import "DotWars/internal/battle/entity/domain"

const (
	// 单轮损失满编兵力时最多掉的士气
	maxMoraleLossPerRound float32 = 20
	routMoraleThreshold   float32 = 20
	routStrengthThreshold float32 = 0.1
)

// CombatSystem 战斗结算公式，纯函数，不持有状态。
type CombatSystem struct{}

var CS = &CombatSystem{}

// CalculateDamage 计算一次攻击的伤害：
// max(攻击×攻方阵型倍率 - 防御×守方阵型倍率, 1) × 士气/100，向零取整。
func (c *CombatSystem) CalculateDamage(attacker *domain.Unit, attackerStats domain.CombatStats,
	defender *domain.Unit, defenderStats domain.CombatStats) uint32 {
	modifiedAttack := attackerStats.Attack * attacker.Formation.Modifiers().Attack
	modifiedDefense := defenderStats.Defense * defender.Formation.Modifiers().Defense

	raw := modifiedAttack - modifiedDefense
	if raw < 1 {
		raw = 1
	}
	morale := attacker.Morale
	if morale < 0 {
		morale = 0
	}
	final := raw * (morale / 100)
	if final <= 0 {
		return 0
	}
	return uint32(final)
}

// ApplyCasualties 扣兵力（不会低于 0），按损失占满编的比例扣士气（不会低于 0）。
func (c *CombatSystem) ApplyCasualties(unit *domain.Unit, casualties uint32) {
	if casualties >= unit.Count {
		unit.Count = 0
	} else {
		unit.Count -= casualties
	}
	if casualties == 0 {
		return
	}
	if unit.MaxCount == 0 {
		unit.Morale = 0
		return
	}
	ratio := float32(casualties) / float32(unit.MaxCount)
	unit.Morale -= ratio * maxMoraleLossPerRound
	if unit.Morale < 0 {
		unit.Morale = 0
	}
}

// CheckRout 士气低于 20 或剩余兵力不足一成即溃散，任一条件满足即可。
func (c *CombatSystem) CheckRout(unit *domain.Unit) bool {
	return unit.Morale < routMoraleThreshold || unit.Strength() < routStrengthThreshold
}
