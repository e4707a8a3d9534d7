package entity

import (
	gd "DotWars/internal/game/domain"
	"DotWars/internal/world/entity/domain"
)

type WorldID int

// World 战略层聚合：地图、势力、回合数。只由 world actor 修改。
type World struct {
	worldID  WorldID
	seed     int64
	turn     uint32
	worldMap *WorldMap
	factions map[gd.FactionID]*gd.Faction
	order    []gd.FactionID
	dirty    bool
}

func NewWorld(worldID WorldID, seed int64, worldMap *WorldMap) *World {
	if worldMap == nil {
		worldMap = NewWorldMap()
	}
	return &World{
		worldID:  worldID,
		seed:     seed,
		worldMap: worldMap,
		factions: make(map[gd.FactionID]*gd.Faction),
	}
}

func (w *World) ID() WorldID {
	return w.worldID
}

func (w *World) Seed() int64 {
	return w.seed
}

func (w *World) Turn() uint32 {
	return w.turn
}

func (w *World) Map() *WorldMap {
	return w.worldMap
}

// AddFaction 注册势力，同 id 覆盖。
func (w *World) AddFaction(f *gd.Faction) {
	if f == nil {
		return
	}
	if _, ok := w.factions[f.ID]; !ok {
		w.order = append(w.order, f.ID)
	}
	w.factions[f.ID] = f
	w.dirty = true
}

func (w *World) Faction(id gd.FactionID) (*gd.Faction, bool) {
	f, ok := w.factions[id]
	return f, ok
}

// Factions 按注册顺序返回。
func (w *World) Factions() []*gd.Faction {
	out := make([]*gd.Faction, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.factions[id])
	}
	return out
}

// Province 便捷查询，不存在时返回 ErrProvinceNotFound。
func (w *World) Province(id gd.ProvinceID) (*domain.Province, error) {
	p, ok := w.worldMap.GetProvince(id)
	if !ok {
		return nil, gd.ErrProvinceNotFound.WithData("province_id", id.String())
	}
	return p, nil
}

func (w *World) AdvanceTurn() {
	w.turn++
	w.dirty = true
}

func (w *World) MarkDirty() {
	w.dirty = true
}

func (w *World) Dirty() bool {
	return w != nil && w.dirty
}

func (w *World) ClearDirty() {
	w.dirty = false
}

func (w *World) BuildPersistSnapshot(version uint64) (*WorldPersistSnapshot, bool) {
	if w == nil || !w.Dirty() {
		return nil, false
	}
	return w.Snapshot(version), true
}

// Snapshot 深拷贝当前状态，不看 dirty。
func (w *World) Snapshot(version uint64) *WorldPersistSnapshot {
	s := &WorldPersistSnapshot{
		Version: version,
		WorldID: w.worldID,
		Seed:    w.seed,
		Turn:    w.turn,
	}
	for _, f := range w.Factions() {
		s.Factions = append(s.Factions, *f)
	}
	for _, p := range w.worldMap.Provinces() {
		s.Provinces = append(s.Provinces, *p.Clone())
	}
	return s
}
