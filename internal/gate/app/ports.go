package app

import (
	"DotWars/internal/battle/entity"
	btdomain "DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
	"DotWars/internal/shared/actor/messages"
	wentity "DotWars/internal/world/entity"
	"DotWars/internal/world/entity/domain"
	"context"
)

// WorldClient 战略层入口，由 world actor runtime 实现。
type WorldClient interface {
	AdvanceTurn(ctx context.Context) (*messages.WHAdvanceTurn, error)
	FactionIncome(ctx context.Context, factionID gd.FactionID) (*messages.WHFactionIncome, error)
	FactionProvinces(ctx context.Context, factionID gd.FactionID) ([]domain.Province, error)
	ListFactions(ctx context.Context) (*messages.WHListFactions, error)
	TransferProvince(ctx context.Context, provinceID gd.ProvinceID, newOwner *gd.FactionID) (*domain.Province, error)
	Construct(ctx context.Context, factionID gd.FactionID, provinceID gd.ProvinceID, bt domain.BuildingType) (*messages.WHConstruct, error)
	Recruit(ctx context.Context, factionID gd.FactionID, ut btdomain.UnitType, size uint32) (*messages.WHRecruit, error)
	WorldSnapshot(ctx context.Context) (*wentity.WorldPersistSnapshot, error)
}

// BattleClient 战术层入口，由 battle actor runtime 实现。
type BattleClient interface {
	CreateBattle(ctx context.Context, attacker, defender gd.FactionID, field btdomain.Battlefield) (string, error)
	Deploy(ctx context.Context, battleID string, u btdomain.Unit, stats btdomain.CombatStats, pos gd.Position) (btdomain.Side, error)
	BeginCombat(ctx context.Context, battleID string) (*messages.BHBattleState, error)
	RunRound(ctx context.Context, battleID string) (*messages.BHRunRound, error)
	RunToEnd(ctx context.Context, battleID string, maxRounds int) (*entity.BattleReport, []messages.BHRunRound, error)
	GetBattle(ctx context.Context, battleID string) (*messages.BHBattleState, error)
	ListReports(ctx context.Context, limit int) ([]*entity.BattleReport, error)
}
