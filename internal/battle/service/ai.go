package service

import (
	"DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
)

// BattleAI 无状态的启发式决策，同样的输入永远给出同样的输出。
type BattleAI struct{}

var AI = &BattleAI{}

// ChooseFormation 步兵遇骑兵结方阵，否则横队；骑兵楔形；弓兵散兵；炮兵和特殊兵种横队。
func (a *BattleAI) ChooseFormation(unitType domain.UnitType, enemies []*domain.Unit) domain.Formation {
	switch unitType.Kind {
	case domain.KindInfantry:
		for _, e := range enemies {
			if e != nil && e.UnitType.Kind == domain.KindCavalry {
				return domain.FormationSquare
			}
		}
		return domain.FormationLine
	case domain.KindCavalry:
		return domain.FormationWedge
	case domain.KindArchers:
		return domain.FormationSkirmish
	default:
		return domain.FormationLine
	}
}

// ChooseTarget 选兵力最少的敌军，并列时取遍历中第一个；没有敌军返回 false。
func (a *BattleAI) ChooseTarget(attacker *domain.Unit, enemies []*domain.Unit) (gd.UnitID, bool) {
	var best *domain.Unit
	for _, e := range enemies {
		if e == nil {
			continue
		}
		if best == nil || e.Count < best.Count {
			best = e
		}
	}
	if best == nil {
		return gd.UnitID{}, false
	}
	return best.ID, true
}
