package messages

import (
	"DotWars/internal/battle/entity"
	"DotWars/internal/battle/entity/domain"
	"DotWars/internal/battle/service"
	gd "DotWars/internal/game/domain"
)

// BattleMessage 发往某场战斗的请求，由 battle manager 按 BattleID 转发。
type BattleMessage interface {
	BattleID() string
}

type BattleBaseMessage struct {
	BattleId string
}

func (b BattleBaseMessage) BattleID() string {
	return b.BattleId
}

// HBCreateBattle 由 manager 直接处理，生成战斗 id 并创建战斗 actor。
type HBCreateBattle struct {
	Attacker    gd.FactionID
	Defender    gd.FactionID
	Battlefield domain.Battlefield
}

type BHCreateBattle struct {
	BattleID string
}

// HBDeploy 部队所有权随消息移交给战斗。
type HBDeploy struct {
	BattleBaseMessage
	Unit     domain.Unit
	Stats    domain.CombatStats
	Position gd.Position
}

type BHDeploy struct {
	Side domain.Side
}

type HBBeginCombat struct {
	BattleBaseMessage
}

type HBRunRound struct {
	BattleBaseMessage
}

// BHRunRound Report 只在战斗结束的那一轮非空。
type BHRunRound struct {
	Round  service.RoundReport
	Report *entity.BattleReport
}

type HBGetBattle struct {
	BattleBaseMessage
}

type BHBattleState struct {
	Battle domain.Battle
	Units  []entity.UnitOutcome
	Report *entity.BattleReport
}

// HBListReports 由 manager 直接查询战报库。
type HBListReports struct {
	Limit int
}

type BHListReports struct {
	Reports []*entity.BattleReport
}
