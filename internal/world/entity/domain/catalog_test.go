package domain

import (
	"encoding/json"
	"testing"

	gd "DotWars/internal/game/domain"
)

func TestTerrainType_移动代价与防御加成(t *testing.T) {
	cases := []struct {
		t       TerrainType
		move    float32
		defense float32
	}{
		{TerrainPlains, 1.0, 0},
		{TerrainForest, 1.5, 0.2},
		{TerrainMountains, 2.0, 0.5},
		{TerrainDesert, 1.8, 0.1},
		{TerrainSwamp, 2.5, 0.3},
		{TerrainCoast, 1.0, 0},
	}
	for _, tc := range cases {
		if got := tc.t.MovementCost(); got != tc.move {
			t.Fatalf("%s movement got=%v want=%v", tc.t, got, tc.move)
		}
		if got := tc.t.DefenseBonus(); got != tc.defense {
			t.Fatalf("%s defense got=%v want=%v", tc.t, got, tc.defense)
		}
	}
}

func TestBuildingType_2级农场产出200粮食(t *testing.T) {
	if got := BuildingFarm.ResourceIncome(2); got != (gd.Resource{Food: 200}) {
		t.Fatalf("got=%+v", got)
	}
}

func TestBuildingType_造价与产出按等级线性(t *testing.T) {
	for _, bt := range []BuildingType{BuildingCity, BuildingFarm, BuildingMine, BuildingBarracks,
		BuildingWorkshop, BuildingFort, BuildingPort, BuildingTemple} {
		for level := uint32(1); level <= 5; level++ {
			if got, want := bt.ConstructionCost(level), bt.ConstructionCost(1).Scale(level); got != want {
				t.Fatalf("%s cost level=%d got=%+v want=%+v", bt, level, got, want)
			}
			if got, want := bt.ResourceIncome(level), bt.ResourceIncome(1).Scale(level); got != want {
				t.Fatalf("%s income level=%d got=%+v want=%+v", bt, level, got, want)
			}
		}
	}
	if got := BuildingWorkshop.ConstructionCost(1); got != (gd.Resource{Gold: 350, Materials: 400}) {
		t.Fatalf("workshop cost got=%+v", got)
	}
	if got := BuildingFort.ResourceIncome(3); !got.IsZero() {
		t.Fatalf("要塞没有产出, got=%+v", got)
	}
}

func TestBuilding_未完工不产出(t *testing.T) {
	b := NewBuilding(BuildingMine)
	if !b.Income().IsZero() {
		t.Fatalf("新建筑不应产出")
	}
	if b.Advance(0.5) {
		t.Fatalf("0.5 不应完工")
	}
	if !b.Advance(0.6) || b.ConstructionProgress != 1.0 {
		t.Fatalf("应在第二次推进时完工并夹到 1.0, got=%v", b.ConstructionProgress)
	}
	if got := b.Income(); got != (gd.Resource{Materials: 80}) {
		t.Fatalf("got=%+v", got)
	}
	b.Upgrade()
	if b.Level != 2 || b.ConstructionProgress != 0 || !b.Income().IsZero() {
		t.Fatalf("升级后应重新开工, got=%+v", b)
	}
}

func TestEnums_JSON字符串往返(t *testing.T) {
	in := Province{
		ID:          gd.NewProvinceID(),
		Name:        "Province 1",
		Buildings:   []Building{{BuildingType: BuildingTemple, Level: 2, ConstructionProgress: 1}},
		TerrainType: TerrainSwamp,
	}
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Province
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.TerrainType != TerrainSwamp || out.Buildings[0].BuildingType != BuildingTemple || out.ID != in.ID {
		t.Fatalf("round trip 失败: %s", raw)
	}
	var bad TerrainType
	if err := json.Unmarshal([]byte(`"Lava"`), &bad); err == nil {
		t.Fatalf("未知地形应报错")
	}
}

func TestProvince_相邻集合去重(t *testing.T) {
	p := &Province{ID: gd.NewProvinceID()}
	n := gd.NewProvinceID()
	p.AddNeighbor(n)
	p.AddNeighbor(n)
	p.AddNeighbor(p.ID)
	if len(p.AdjacentProvinces) != 1 || !p.IsAdjacent(n) {
		t.Fatalf("got=%v", p.AdjacentProvinces)
	}
}
