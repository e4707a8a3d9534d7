package entity

import (
	gd "DotWars/internal/game/domain"
	"DotWars/internal/world/entity/domain"
)

// WorldMap 省份表加势力领地索引。
// factionTerritories[f] 应当正好是 Owner == f 的省份集合；
// 通过 AddProvince/SetOwner 修改时保持一致，直接改 Province.Owner 会留下陈旧条目，
// 读路径会跳过陈旧 id，StaleTerritories 可以把它们找出来。
type WorldMap struct {
	provinces          map[gd.ProvinceID]*domain.Province
	order              []gd.ProvinceID
	factionTerritories map[gd.FactionID][]gd.ProvinceID
}

func NewWorldMap() *WorldMap {
	return &WorldMap{
		provinces:          make(map[gd.ProvinceID]*domain.Province),
		factionTerritories: make(map[gd.FactionID][]gd.ProvinceID),
	}
}

// AddProvince 插入省份；同 id 的旧省份会被覆盖，旧 owner 下的索引一并替换。
func (m *WorldMap) AddProvince(p *domain.Province) {
	if p == nil {
		return
	}
	if old, ok := m.provinces[p.ID]; ok {
		if old.Owner != nil {
			m.unindex(*old.Owner, p.ID)
		}
	} else {
		m.order = append(m.order, p.ID)
	}
	m.provinces[p.ID] = p
	if p.Owner != nil {
		m.index(*p.Owner, p.ID)
	}
}

// GetProvince 返回省份指针，调用方持有 WorldMap 的独占权时才能修改它。
func (m *WorldMap) GetProvince(id gd.ProvinceID) (*domain.Province, bool) {
	p, ok := m.provinces[id]
	return p, ok
}

// Provinces 按插入顺序返回全部省份。
func (m *WorldMap) Provinces() []*domain.Province {
	out := make([]*domain.Province, 0, len(m.order))
	for _, id := range m.order {
		if p, ok := m.provinces[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (m *WorldMap) Len() int {
	return len(m.provinces)
}

// FactionProvinces 返回势力拥有的省份，索引里查不到的 id 直接跳过。
func (m *WorldMap) FactionProvinces(f gd.FactionID) []*domain.Province {
	ids := m.factionTerritories[f]
	out := make([]*domain.Province, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.provinces[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// CalculateFactionIncome 汇总势力所有省份中完工建筑的产出。
func (m *WorldMap) CalculateFactionIncome(f gd.FactionID) gd.Resource {
	var total gd.Resource
	for _, p := range m.FactionProvinces(f) {
		total.Add(p.Income())
	}
	return total
}

// SetOwner 转移省份归属并同步领地索引，owner 为 nil 表示变为无主。
func (m *WorldMap) SetOwner(id gd.ProvinceID, owner *gd.FactionID) error {
	p, ok := m.provinces[id]
	if !ok {
		return gd.ErrProvinceNotFound.WithData("province_id", id.String())
	}
	if p.Owner != nil {
		m.unindex(*p.Owner, id)
	}
	if owner == nil {
		p.Owner = nil
		return nil
	}
	o := *owner
	p.Owner = &o
	m.index(o, id)
	return nil
}

// Reindex 按省份上的 owner 重建领地索引。
func (m *WorldMap) Reindex() {
	m.factionTerritories = make(map[gd.FactionID][]gd.ProvinceID)
	for _, id := range m.order {
		p, ok := m.provinces[id]
		if !ok || p.Owner == nil {
			continue
		}
		m.index(*p.Owner, id)
	}
}

// StaleEntry 领地索引里与省份 owner 不一致的一条记录。
type StaleEntry struct {
	Faction  gd.FactionID
	Province gd.ProvinceID
	Missing  bool // 省份不存在
}

// StaleTerritories 找出索引中省份缺失或 owner 已经不是该势力的条目。
func (m *WorldMap) StaleTerritories() []StaleEntry {
	var out []StaleEntry
	for f, ids := range m.factionTerritories {
		for _, id := range ids {
			p, ok := m.provinces[id]
			switch {
			case !ok:
				out = append(out, StaleEntry{Faction: f, Province: id, Missing: true})
			case !p.OwnedBy(f):
				out = append(out, StaleEntry{Faction: f, Province: id})
			}
		}
	}
	return out
}

func (m *WorldMap) index(f gd.FactionID, id gd.ProvinceID) {
	for _, x := range m.factionTerritories[f] {
		if x == id {
			return
		}
	}
	m.factionTerritories[f] = append(m.factionTerritories[f], id)
}

func (m *WorldMap) unindex(f gd.FactionID, id gd.ProvinceID) {
	ids := m.factionTerritories[f]
	for i, x := range ids {
		if x == id {
			m.factionTerritories[f] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(m.factionTerritories[f]) == 0 {
		delete(m.factionTerritories, f)
	}
}
