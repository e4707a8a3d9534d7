package service

import (
	"testing"

	gd "DotWars/internal/game/domain"
	"DotWars/internal/world/entity/domain"
)

func TestGenerate_网格布局与初始状态(t *testing.T) {
	m := NewWorldGenerator(ModuloTerrainPicker{}).Generate(3, 3, 7)
	ps := m.Provinces()
	if len(ps) != 7 {
		t.Fatalf("len=%d", len(ps))
	}
	p := ps[4]
	if p.Name != "Province 5" || p.Position != gd.NewPosition(100, 100) || p.Population != 3000 {
		t.Fatalf("p=%+v", p)
	}
	if p.Owner != nil || p.Resources != gd.NewResource() {
		t.Fatalf("应为无主且带初始库存")
	}
	if len(p.Buildings) != 1 || p.Buildings[0] != (domain.Building{BuildingType: domain.BuildingCity, Level: 1, ConstructionProgress: 1}) {
		t.Fatalf("buildings=%+v", p.Buildings)
	}
	if p.TerrainType != domain.TerrainSwamp {
		t.Fatalf("4 %% 6 应为 Swamp, got=%s", p.TerrainType)
	}
	// 中心格下方 7 号不存在，只剩三个邻居
	if len(p.AdjacentProvinces) != 3 {
		t.Fatalf("adj=%d", len(p.AdjacentProvinces))
	}
	// 最后一行只有一个省份：左邻缺失，右邻不存在
	last := ps[6]
	if len(last.AdjacentProvinces) != 1 || !last.IsAdjacent(ps[3].ID) {
		t.Fatalf("last adj=%v", last.AdjacentProvinces)
	}
	for _, q := range ps {
		for _, n := range q.AdjacentProvinces {
			other, ok := m.GetProvince(n)
			if !ok || !other.IsAdjacent(q.ID) {
				t.Fatalf("邻接关系应对称")
			}
		}
	}
}

func TestModuloTerrainPicker(t *testing.T) {
	want := []domain.TerrainType{domain.TerrainPlains, domain.TerrainForest, domain.TerrainMountains,
		domain.TerrainDesert, domain.TerrainSwamp, domain.TerrainCoast, domain.TerrainPlains}
	for i, w := range want {
		if got := (ModuloTerrainPicker{}).Pick(uint32(i)); got != w {
			t.Fatalf("i=%d got=%s want=%s", i, got, w)
		}
	}
}

func TestNoiseTerrainPicker_同种子可复现(t *testing.T) {
	a := NewNoiseTerrainPicker(42, 8)
	b := NewNoiseTerrainPicker(42, 8)
	for i := uint32(0); i < 64; i++ {
		ta, tb := a.Pick(i), b.Pick(i)
		if ta != tb {
			t.Fatalf("i=%d %s != %s", i, ta, tb)
		}
		if _, err := domain.ParseTerrainType(ta.String()); err != nil {
			t.Fatalf("非法地形 %v", ta)
		}
	}
}

func TestGenerate_空参数(t *testing.T) {
	if m := NewWorldGenerator(nil).Generate(0, 0, 10); m.Len() != 0 {
		t.Fatalf("width 为 0 时应返回空地图")
	}
}

func TestGenerate_超出网格高度继续排行(t *testing.T) {
	m := NewWorldGenerator(nil).Generate(2, 2, 6)
	if m.Len() != 6 {
		t.Fatalf("不应截断到 width*height, got=%d", m.Len())
	}
	var last bool
	for _, p := range m.Provinces() {
		if p.Name == "Province 6" {
			last = true
			if p.Position.X != 100 || p.Position.Y != 200 {
				t.Fatalf("pos=%+v", p.Position)
			}
			// 第 6 个在 (1,2)：左邻第 5 个，上邻第 4 个
			if len(p.AdjacentProvinces) != 2 {
				t.Fatalf("neighbors=%d", len(p.AdjacentProvinces))
			}
		}
	}
	if !last {
		t.Fatalf("缺少 Province 6")
	}
}
