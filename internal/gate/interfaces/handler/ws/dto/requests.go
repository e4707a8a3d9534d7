package dto

import "DotWars/internal/gate/app/model"

// websocket 没有路径参数，资源 id 都放在消息体里。

type FactionReq struct {
	Faction string `json:"faction"`
}

type BattleReq struct {
	BattleID string `json:"battle_id"`
}

type ListReportsReq struct {
	Limit int `json:"limit"`
}

type TransferProvinceReq struct {
	Province string `json:"province"`
	model.TransferProvinceReq
}

type ConstructReq struct {
	Province string `json:"province"`
	model.ConstructReq
}

type RecruitReq struct {
	Faction string `json:"faction"`
	model.RecruitReq
}

type DeployReq struct {
	BattleID string `json:"battle_id"`
	model.DeployReq
}

type RunRoundsReq struct {
	BattleID  string `json:"battle_id"`
	UntilEnd  bool   `json:"until_end"`
	MaxRounds int    `json:"max_rounds"`
}
