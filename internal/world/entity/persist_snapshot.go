package entity

import (
	gd "DotWars/internal/game/domain"
	"DotWars/internal/world/entity/domain"
)

// WorldPersistSnapshot 写库用的只读副本，与 World 不共享任何指针。
type WorldPersistSnapshot struct {
	Version   uint64            `json:"version"`
	WorldID   WorldID           `json:"world_id"`
	Seed      int64             `json:"seed"`
	Turn      uint32            `json:"turn"`
	Factions  []gd.Faction      `json:"factions"`
	Provinces []domain.Province `json:"provinces"`
}

// RestoreWorld 由快照重建聚合，领地索引按省份 owner 重建。
func RestoreWorld(s *WorldPersistSnapshot) *World {
	m := NewWorldMap()
	for i := range s.Provinces {
		m.AddProvince(s.Provinces[i].Clone())
	}
	w := NewWorld(s.WorldID, s.Seed, m)
	w.turn = s.Turn
	for i := range s.Factions {
		f := s.Factions[i]
		w.AddFaction(&f)
	}
	w.dirty = false
	return w
}
