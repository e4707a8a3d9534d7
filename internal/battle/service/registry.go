package service

import (
	"DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
)

// UnitRegistry 一场战斗里的部队登记表：部队、战斗属性、位置按 UnitID 关联。
// 只由持有该战斗的 actor 修改。
type UnitRegistry struct {
	units     map[gd.UnitID]*domain.Unit
	stats     map[gd.UnitID]domain.CombatStats
	positions map[gd.UnitID]gd.Position
	routed    map[gd.UnitID]bool
}

func NewUnitRegistry() *UnitRegistry {
	return &UnitRegistry{
		units:     make(map[gd.UnitID]*domain.Unit),
		stats:     make(map[gd.UnitID]domain.CombatStats),
		positions: make(map[gd.UnitID]gd.Position),
		routed:    make(map[gd.UnitID]bool),
	}
}

// Add 登记部队。同 id 覆盖，溃散标记清除。
// 士气必须在 [0, MaxMorale]，NaN 也拒绝。
func (r *UnitRegistry) Add(u *domain.Unit, stats domain.CombatStats, pos gd.Position) error {
	if u == nil || u.ID.IsZero() || !u.UnitType.Valid() || u.Count > u.MaxCount {
		return gd.ErrInvalidUnit
	}
	if !(u.Morale >= 0 && u.Morale <= domain.MaxMorale) {
		return gd.ErrInvalidUnit.
			WithData("unit_id", u.ID.String()).
			WithData("morale", u.Morale)
	}
	r.units[u.ID] = u
	r.stats[u.ID] = stats
	r.positions[u.ID] = pos
	delete(r.routed, u.ID)
	return nil
}

func (r *UnitRegistry) Unit(id gd.UnitID) (*domain.Unit, bool) {
	u, ok := r.units[id]
	return u, ok
}

func (r *UnitRegistry) Stats(id gd.UnitID) (domain.CombatStats, bool) {
	s, ok := r.stats[id]
	return s, ok
}

// SetStats 只改战斗属性，不动兵力和士气。
func (r *UnitRegistry) SetStats(id gd.UnitID, s domain.CombatStats) error {
	if _, ok := r.units[id]; !ok {
		return gd.ErrUnitNotFound.WithData("unit_id", id.String())
	}
	r.stats[id] = s
	return nil
}

func (r *UnitRegistry) Position(id gd.UnitID) gd.Position {
	return r.positions[id]
}

func (r *UnitRegistry) MarkRouted(id gd.UnitID) {
	if _, ok := r.units[id]; ok {
		r.routed[id] = true
	}
}

func (r *UnitRegistry) IsRouted(id gd.UnitID) bool {
	return r.routed[id]
}

// IsActive 部队存在、有兵、未溃散。
func (r *UnitRegistry) IsActive(id gd.UnitID) bool {
	u, ok := r.units[id]
	return ok && u.Count > 0 && !r.routed[id]
}

// Active 按 ids 顺序返回仍能作战的部队。
func (r *UnitRegistry) Active(ids []gd.UnitID) []*domain.Unit {
	out := make([]*domain.Unit, 0, len(ids))
	for _, id := range ids {
		if r.IsActive(id) {
			out = append(out, r.units[id])
		}
	}
	return out
}

// Remove 取出部队，所有权交还调用方。
func (r *UnitRegistry) Remove(id gd.UnitID) (*domain.Unit, domain.CombatStats, bool) {
	u, ok := r.units[id]
	if !ok {
		return nil, domain.CombatStats{}, false
	}
	s := r.stats[id]
	delete(r.units, id)
	delete(r.stats, id)
	delete(r.positions, id)
	delete(r.routed, id)
	return u, s, true
}

func (r *UnitRegistry) Len() int {
	return len(r.units)
}
