package model

import (
	btdomain "DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
)

// TransferProvinceReq Owner 为空表示变为无主。
type TransferProvinceReq struct {
	Owner *string `json:"owner"`
}

type ConstructReq struct {
	Faction  string `json:"faction" binding:"required"`
	Building string `json:"building" binding:"required"`
}

type RecruitReq struct {
	UnitType string `json:"unit_type" binding:"required"`
	Size     uint32 `json:"size" binding:"required"`
}

type CreateBattleReq struct {
	Attacker    string               `json:"attacker" binding:"required"`
	Defender    string               `json:"defender" binding:"required"`
	Battlefield btdomain.Battlefield `json:"battlefield"`
}

// DeployReq Stats 为空时按兵种基础属性。
type DeployReq struct {
	Unit     btdomain.Unit         `json:"unit"`
	Stats    *btdomain.CombatStats `json:"stats"`
	Position gd.Position           `json:"position"`
}

type RunRoundsReq struct {
	UntilEnd  bool `form:"until_end"`
	MaxRounds int  `form:"max_rounds"`
}
