package messages

import (
	btdomain "DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
	"DotWars/internal/world/entity"
	"DotWars/internal/world/entity/domain"
)

// WorldMessage 发往 world actor 的请求。
type WorldMessage interface {
	WorldID() int
}

type WorldBaseMessage struct {
	WorldId int
}

func (w WorldBaseMessage) WorldID() int {
	return w.WorldId
}

// HWAdvanceTurn 结算一个回合。
type HWAdvanceTurn struct {
	WorldBaseMessage
}

type WHAdvanceTurn struct {
	Turn      uint32
	Income    map[gd.FactionID]gd.Resource
	Completed int
}

type HWFactionIncome struct {
	WorldBaseMessage
	FactionID gd.FactionID
}

type WHFactionIncome struct {
	FactionID gd.FactionID
	Income    gd.Resource
	Treasury  gd.Resource
}

type HWFactionProvinces struct {
	WorldBaseMessage
	FactionID gd.FactionID
}

type WHFactionProvinces struct {
	Provinces []domain.Province
}

type HWListFactions struct {
	WorldBaseMessage
}

type WHListFactions struct {
	Turn     uint32
	Factions []gd.Faction
}

// HWTransferProvince NewOwner 为 nil 表示变为无主。
type HWTransferProvince struct {
	WorldBaseMessage
	ProvinceID gd.ProvinceID
	NewOwner   *gd.FactionID
}

type WHTransferProvince struct {
	Province domain.Province
}

type HWConstruct struct {
	WorldBaseMessage
	FactionID    gd.FactionID
	ProvinceID   gd.ProvinceID
	BuildingType domain.BuildingType
}

type WHConstruct struct {
	Building domain.Building
	Cost     gd.Resource
	Treasury gd.Resource
}

type HWRecruit struct {
	WorldBaseMessage
	FactionID gd.FactionID
	UnitType  btdomain.UnitType
	Size      uint32
}

// WHRecruit 新部队的所有权随回复交给调用方。
type WHRecruit struct {
	Unit     btdomain.Unit
	Stats    btdomain.CombatStats
	Treasury gd.Resource
}

type HWWorldSnapshot struct {
	WorldBaseMessage
}

type WHWorldSnapshot struct {
	Snapshot *entity.WorldPersistSnapshot
}
