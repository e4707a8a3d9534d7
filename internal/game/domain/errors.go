package domain

import "DotWars/modules/kit/errx"

// 规则拒绝类错误码，调用方可以稍后重试或取消动作。
const (
	CodeInsufficientFunds      errx.Code = "ECONOMY_INSUFFICIENT_FUNDS"
	CodeWorldNotFound          errx.Code = "WORLD_NOT_FOUND"
	CodeFactionNotFound        errx.Code = "WORLD_FACTION_NOT_FOUND"
	CodeProvinceNotFound       errx.Code = "WORLD_PROVINCE_NOT_FOUND"
	CodeNotProvinceOwner       errx.Code = "WORLD_NOT_PROVINCE_OWNER"
	CodeBuildingInProgress     errx.Code = "WORLD_BUILDING_IN_PROGRESS"
	CodeUnitNotFound           errx.Code = "BATTLE_UNIT_NOT_FOUND"
	CodeInvalidUnit            errx.Code = "BATTLE_INVALID_UNIT"
	CodeBattleNotFound         errx.Code = "BATTLE_NOT_FOUND"
	CodeBattleResolved         errx.Code = "BATTLE_RESOLVED"
	CodeInvalidPhaseTransition errx.Code = "BATTLE_INVALID_PHASE_TRANSITION"
)

var (
	ErrInsufficientFunds      = errx.NewBiz(CodeInsufficientFunds, "资源不足")
	ErrWorldNotFound          = errx.NewBiz(CodeWorldNotFound, "世界不存在")
	ErrFactionNotFound        = errx.NewBiz(CodeFactionNotFound, "势力不存在")
	ErrProvinceNotFound       = errx.NewBiz(CodeProvinceNotFound, "省份不存在")
	ErrNotProvinceOwner       = errx.NewBiz(CodeNotProvinceOwner, "省份不属于该势力")
	ErrBuildingInProgress     = errx.NewBiz(CodeBuildingInProgress, "建筑仍在施工")
	ErrUnitNotFound           = errx.NewBiz(CodeUnitNotFound, "部队不存在")
	ErrInvalidUnit            = errx.NewBiz(CodeInvalidUnit, "部队参数非法")
	ErrBattleNotFound         = errx.NewBiz(CodeBattleNotFound, "战斗不存在")
	ErrBattleResolved         = errx.NewBiz(CodeBattleResolved, "战斗已结束")
	ErrInvalidPhaseTransition = errx.NewBiz(CodeInvalidPhaseTransition, "战斗阶段不允许该操作")
)
