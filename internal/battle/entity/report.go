package entity

import (
	"time"

	"DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
)

// UnitOutcome 战斗结束时一支部队的状态。
type UnitOutcome struct {
	Unit   domain.Unit        `json:"unit"`
	Stats  domain.CombatStats `json:"stats"`
	Side   domain.Side        `json:"side"`
	Routed bool               `json:"routed"`
}

// BattleReport 已结束战斗的归档记录。
type BattleReport struct {
	BattleID   string        `json:"battle_id"`
	Attacker   gd.FactionID  `json:"attacker"`
	Defender   gd.FactionID  `json:"defender"`
	Winner     *gd.FactionID `json:"winner,omitempty"`
	Reason     string        `json:"reason"`
	Turns      uint32        `json:"turns"`
	Battle     domain.Battle `json:"battle"`
	Units      []UnitOutcome `json:"units"`
	ResolvedAt time.Time     `json:"resolved_at"`
}

// 战斗结束原因
const (
	ReasonAttackerEliminated = "ATTACKER_ELIMINATED"
	ReasonDefenderEliminated = "DEFENDER_ELIMINATED"
	ReasonMutualDestruction  = "MUTUAL_DESTRUCTION"
	ReasonStopRule           = "STOP_RULE"
)

// WinnerText 无胜者时返回 "draw"。
func (r *BattleReport) WinnerText() string {
	if r.Winner == nil {
		return "draw"
	}
	return r.Winner.String()
}
