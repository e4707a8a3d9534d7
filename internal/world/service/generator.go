package service

import (
	"fmt"

	gd "DotWars/internal/game/domain"
	"DotWars/internal/world/entity"
	"DotWars/internal/world/entity/domain"
)

// 网格间距
const gridSpacing float32 = 100

// WorldGenerator 按网格铺设省份。
type WorldGenerator struct {
	picker TerrainPicker
}

func NewWorldGenerator(picker TerrainPicker) *WorldGenerator {
	if picker == nil {
		picker = ModuloTerrainPicker{}
	}
	return &WorldGenerator{picker: picker}
}

// Generate 生成 numProvinces 个无主省份：第 i 个位于 ((i%width)*100, (i/width)*100)，
// 人口 1000+500i，初始库存，一座已完工的 1 级城市，四邻接。
// height 不截断省份数：超过 width*height 时继续向下排行。
func (g *WorldGenerator) Generate(width, height, numProvinces uint32) *entity.WorldMap {
	m := entity.NewWorldMap()
	if width == 0 || numProvinces == 0 {
		return m
	}

	ids := make([]gd.ProvinceID, numProvinces)
	for i := uint32(0); i < numProvinces; i++ {
		ids[i] = gd.NewProvinceID()
	}
	for i := uint32(0); i < numProvinces; i++ {
		p := &domain.Province{
			ID:         ids[i],
			Name:       fmt.Sprintf("Province %d", i+1),
			Position:   gd.NewPosition(float32(i%width)*gridSpacing, float32(i/width)*gridSpacing),
			Population: 1000 + i*500,
			Resources:  gd.NewResource(),
			Buildings: []domain.Building{
				{BuildingType: domain.BuildingCity, Level: 1, ConstructionProgress: 1.0},
			},
			TerrainType: g.picker.Pick(i),
		}
		col, row := i%width, i/width
		if col > 0 {
			p.AddNeighbor(ids[i-1])
		}
		if col+1 < width && i+1 < numProvinces {
			p.AddNeighbor(ids[i+1])
		}
		if row > 0 {
			p.AddNeighbor(ids[i-width])
		}
		if i+width < numProvinces {
			p.AddNeighbor(ids[i+width])
		}
		m.AddProvince(p)
	}
	return m
}
