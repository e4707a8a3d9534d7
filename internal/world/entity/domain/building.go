package domain

import (
	"encoding/json"
	"fmt"

	gd "DotWars/internal/game/domain"
)

// BuildingType 建筑类型。
type BuildingType uint8

const (
	BuildingCity BuildingType = iota
	BuildingFarm
	BuildingMine
	BuildingBarracks
	BuildingWorkshop
	BuildingFort
	BuildingPort
	BuildingTemple
)

type buildingSpec struct {
	name   string
	cost   gd.Resource // 1 级造价
	income gd.Resource // 1 级每回合产出
}

var buildingCatalog = map[BuildingType]buildingSpec{
	BuildingCity:     {"City", gd.Resource{Gold: 500, Materials: 300}, gd.Resource{Gold: 50}},
	BuildingFarm:     {"Farm", gd.Resource{Gold: 200, Materials: 100}, gd.Resource{Food: 100}},
	BuildingMine:     {"Mine", gd.Resource{Gold: 300, Materials: 200}, gd.Resource{Materials: 80}},
	BuildingBarracks: {"Barracks", gd.Resource{Gold: 400, Materials: 250}, gd.Resource{Manpower: 20}},
	BuildingWorkshop: {"Workshop", gd.Resource{Gold: 350, Materials: 400}, gd.Resource{Gold: 30, Materials: 20}},
	BuildingFort:     {"Fort", gd.Resource{Gold: 600, Materials: 500}, gd.Resource{}},
	BuildingPort:     {"Port", gd.Resource{Gold: 800, Materials: 400}, gd.Resource{Gold: 80}},
	BuildingTemple:   {"Temple", gd.Resource{Gold: 450, Materials: 200}, gd.Resource{Gold: 20}},
}

// ConstructionCost 建到 level 级的造价，等于 1 级造价 × level。
func (b BuildingType) ConstructionCost(level uint32) gd.Resource {
	return buildingCatalog[b].cost.Scale(level)
}

// ResourceIncome level 级建筑每回合产出，等于 1 级产出 × level。
func (b BuildingType) ResourceIncome(level uint32) gd.Resource {
	return buildingCatalog[b].income.Scale(level)
}

func (b BuildingType) Valid() bool {
	_, ok := buildingCatalog[b]
	return ok
}

func (b BuildingType) String() string {
	if s, ok := buildingCatalog[b]; ok {
		return s.name
	}
	return fmt.Sprintf("BuildingType(%d)", uint8(b))
}

func ParseBuildingType(s string) (BuildingType, error) {
	for k, v := range buildingCatalog {
		if v.name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown building type %q", s)
}

func (b BuildingType) MarshalJSON() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("unknown building type %d", uint8(b))
	}
	return json.Marshal(b.String())
}

func (b *BuildingType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseBuildingType(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Building 省份里的一座建筑。Level >= 1，ConstructionProgress 在 [0,1]。
type Building struct {
	BuildingType         BuildingType `json:"building_type"`
	Level                uint32       `json:"level"`
	ConstructionProgress float32      `json:"construction_progress"`
}

// NewBuilding 新开工的 1 级建筑。
func NewBuilding(t BuildingType) Building {
	return Building{BuildingType: t, Level: 1}
}

// IsComplete 建造进度到 1.0 才算完工。
func (b *Building) IsComplete() bool {
	return b.ConstructionProgress >= 1.0
}

// Income 未完工的建筑没有产出。
func (b *Building) Income() gd.Resource {
	if !b.IsComplete() {
		return gd.Resource{}
	}
	return b.BuildingType.ResourceIncome(b.Level)
}

// Advance 推进建造进度，返回是否在这次推进中完工。
func (b *Building) Advance(rate float32) bool {
	if b.IsComplete() || rate <= 0 {
		return false
	}
	b.ConstructionProgress += rate
	if b.ConstructionProgress >= 1.0 {
		b.ConstructionProgress = 1.0
		return true
	}
	return false
}

// Upgrade 升一级并重新开工。
func (b *Building) Upgrade() {
	b.Level++
	b.ConstructionProgress = 0
}
