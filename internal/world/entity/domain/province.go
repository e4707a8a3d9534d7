package domain

import gd "DotWars/internal/game/domain"

// Province 战略地图上的一个省份。
// Owner 为 nil 表示无主；AdjacentProvinces 按集合语义使用（不重复、不含自身）。
type Province struct {
	ID                gd.ProvinceID   `json:"id"`
	Name              string          `json:"name"`
	Owner             *gd.FactionID   `json:"owner,omitempty"`
	Position          gd.Position     `json:"position"`
	Population        uint32          `json:"population"`
	Resources         gd.Resource     `json:"resources"`
	Buildings         []Building      `json:"buildings"`
	AdjacentProvinces []gd.ProvinceID `json:"adjacent_provinces"`
	TerrainType       TerrainType     `json:"terrain_type"`
}

// OwnedBy 省份是否属于 f。
func (p *Province) OwnedBy(f gd.FactionID) bool {
	return p.Owner != nil && *p.Owner == f
}

// Income 所有完工建筑的产出之和。
func (p *Province) Income() gd.Resource {
	var total gd.Resource
	for i := range p.Buildings {
		total.Add(p.Buildings[i].Income())
	}
	return total
}

// FindBuilding 返回第一座该类型建筑的下标。
func (p *Province) FindBuilding(t BuildingType) (int, bool) {
	for i := range p.Buildings {
		if p.Buildings[i].BuildingType == t {
			return i, true
		}
	}
	return -1, false
}

// AddNeighbor 加入相邻省份，重复和自身会被忽略。
func (p *Province) AddNeighbor(id gd.ProvinceID) {
	if id == p.ID {
		return
	}
	for _, n := range p.AdjacentProvinces {
		if n == id {
			return
		}
	}
	p.AdjacentProvinces = append(p.AdjacentProvinces, id)
}

// IsAdjacent 是否与 id 相邻。
func (p *Province) IsAdjacent(id gd.ProvinceID) bool {
	for _, n := range p.AdjacentProvinces {
		if n == id {
			return true
		}
	}
	return false
}

// Clone 深拷贝，快照和对外查询用。
func (p *Province) Clone() *Province {
	if p == nil {
		return nil
	}
	c := *p
	if p.Owner != nil {
		o := *p.Owner
		c.Owner = &o
	}
	c.Buildings = append([]Building(nil), p.Buildings...)
	c.AdjacentProvinces = append([]gd.ProvinceID(nil), p.AdjacentProvinces...)
	return &c
}
