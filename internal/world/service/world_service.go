package service

import (
	"context"

	btdomain "DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
	"DotWars/internal/world/entity"
	"DotWars/internal/world/entity/domain"
	"DotWars/modules/kit/errx"
	"DotWars/modules/kit/logx"

	"go.uber.org/zap"
)

const (
	defaultConstructionRate float32 = 0.25
	defaultStartingMorale   float32 = 100
)

var factionPalette = []string{"#d64541", "#3a6ea5", "#3fa34d", "#e0a526", "#8e44ad", "#16a085"}

// WorldService 战略层规则：回合收入、建造、招募、省份易主。
// 所有方法都假定调用方独占 World。
type WorldService struct {
	constructionRate float32
	startingMorale   float32
	log              logx.Logger
}

type Option func(*WorldService)

// WithConstructionRate 每回合建造进度。
func WithConstructionRate(rate float32) Option {
	return func(s *WorldService) {
		if rate > 0 {
			s.constructionRate = rate
		}
	}
}

// WithStartingMorale 新招募部队的初始士气。
func WithStartingMorale(morale float32) Option {
	return func(s *WorldService) {
		if morale > 0 {
			s.startingMorale = morale
		}
	}
}

func WithLogger(l logx.Logger) Option {
	return func(s *WorldService) {
		if l != nil {
			s.log = l
		}
	}
}

func NewWorldService(opts ...Option) *WorldService {
	s := &WorldService{
		constructionRate: defaultConstructionRate,
		startingMorale:   defaultStartingMorale,
		log:              logx.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TurnReport 一个回合的结算结果。
type TurnReport struct {
	Turn      uint32                       `json:"turn"`
	Income    map[gd.FactionID]gd.Resource `json:"income"`
	Completed []CompletedBuilding          `json:"completed,omitempty"`
}

type CompletedBuilding struct {
	Province     gd.ProvinceID       `json:"province"`
	BuildingType domain.BuildingType `json:"building_type"`
	Level        uint32              `json:"level"`
}

// AdvanceTurn 先给每个势力结算收入，再推进施工，最后回合数 +1。
// 本回合完工的建筑从下回合开始产出。
func (s *WorldService) AdvanceTurn(ctx context.Context, w *entity.World) *TurnReport {
	log := s.log.WithContext(ctx)
	m := w.Map()
	for _, st := range m.StaleTerritories() {
		log.Warn("stale territory entry",
			zap.String("faction_id", st.Faction.String()),
			zap.String("province_id", st.Province.String()),
			zap.Bool("missing", st.Missing),
		)
	}

	report := &TurnReport{Income: make(map[gd.FactionID]gd.Resource)}
	for _, f := range w.Factions() {
		income := m.CalculateFactionIncome(f.ID)
		f.Treasury.Add(income)
		report.Income[f.ID] = income
	}

	for _, p := range m.Provinces() {
		for i := range p.Buildings {
			b := &p.Buildings[i]
			if b.Advance(s.constructionRate) {
				report.Completed = append(report.Completed, CompletedBuilding{
					Province:     p.ID,
					BuildingType: b.BuildingType,
					Level:        b.Level,
				})
			}
		}
	}

	w.AdvanceTurn()
	report.Turn = w.Turn()
	log.Info("turn advanced",
		zap.Int("world_id", int(w.ID())),
		zap.Uint32("turn", report.Turn),
		zap.Int("completed", len(report.Completed)),
	)
	return report
}

// Construct 在省份开工新建筑（1 级），已有同类建筑则升一级；按目标等级线性计价。
// 资源不足时不做任何修改。
func (s *WorldService) Construct(w *entity.World, factionID gd.FactionID, provinceID gd.ProvinceID, bt domain.BuildingType) (*domain.Building, gd.Resource, error) {
	if !bt.Valid() {
		return nil, gd.Resource{}, errx.ErrReqParamERR.WithData("building_type", int(bt))
	}
	f, ok := w.Faction(factionID)
	if !ok {
		return nil, gd.Resource{}, gd.ErrFactionNotFound.WithData("faction_id", factionID.String())
	}
	p, err := w.Province(provinceID)
	if err != nil {
		return nil, gd.Resource{}, err
	}
	if !p.OwnedBy(factionID) {
		return nil, gd.Resource{}, gd.ErrNotProvinceOwner.
			WithData("faction_id", factionID.String()).
			WithData("province_id", provinceID.String())
	}

	idx, exists := p.FindBuilding(bt)
	level := uint32(1)
	if exists {
		if !p.Buildings[idx].IsComplete() {
			return nil, gd.Resource{}, gd.ErrBuildingInProgress.
				WithData("province_id", provinceID.String()).
				WithData("building_type", bt.String())
		}
		level = p.Buildings[idx].Level + 1
	}

	cost := bt.ConstructionCost(level)
	if !f.Treasury.Subtract(cost) {
		return nil, cost, gd.ErrInsufficientFunds.
			WithData("faction_id", factionID.String()).
			WithData("building_type", bt.String()).
			WithData("level", level)
	}

	if exists {
		p.Buildings[idx].Upgrade()
	} else {
		p.Buildings = append(p.Buildings, domain.NewBuilding(bt))
		idx = len(p.Buildings) - 1
	}
	w.MarkDirty()
	b := p.Buildings[idx]
	return &b, cost, nil
}

// Recruit 按兵种价格扣款并组建一支满员部队，部队所有权交给调用方。
func (s *WorldService) Recruit(w *entity.World, factionID gd.FactionID, ut btdomain.UnitType, size uint32) (*btdomain.Unit, btdomain.CombatStats, error) {
	if size == 0 || !ut.Valid() {
		return nil, btdomain.CombatStats{}, gd.ErrInvalidUnit.WithData("unit_type", ut.String()).WithData("size", size)
	}
	f, ok := w.Faction(factionID)
	if !ok {
		return nil, btdomain.CombatStats{}, gd.ErrFactionNotFound.WithData("faction_id", factionID.String())
	}
	cost := ut.Stats().Cost
	if !f.Treasury.Subtract(cost) {
		return nil, btdomain.CombatStats{}, gd.ErrInsufficientFunds.
			WithData("faction_id", factionID.String()).
			WithData("unit_type", ut.String())
	}
	w.MarkDirty()
	return btdomain.NewUnit(factionID, ut, size, s.startingMorale), btdomain.NewCombatStats(ut), nil
}

// TransferProvince 省份易主，newOwner 为 nil 表示变为无主。
func (s *WorldService) TransferProvince(w *entity.World, provinceID gd.ProvinceID, newOwner *gd.FactionID) error {
	if newOwner != nil {
		if _, ok := w.Faction(*newOwner); !ok {
			return gd.ErrFactionNotFound.WithData("faction_id", newOwner.String())
		}
	}
	if err := w.Map().SetOwner(provinceID, newOwner); err != nil {
		return err
	}
	w.MarkDirty()
	return nil
}

// SpawnFactions 创建势力，并把地图上均匀分布的无主省份分给它们各一个作为首都。
func (s *WorldService) SpawnFactions(w *entity.World, names []string) []*gd.Faction {
	provinces := w.Map().Provinces()
	out := make([]*gd.Faction, 0, len(names))
	for i, name := range names {
		f := gd.NewFaction(name, factionPalette[i%len(factionPalette)])
		w.AddFaction(f)
		out = append(out, f)
		if len(provinces) == 0 {
			continue
		}
		p := provinces[(i*len(provinces))/len(names)]
		if p.Owner == nil {
			_ = w.Map().SetOwner(p.ID, &f.ID)
		}
	}
	return out
}

// WorldSpec 新世界的生成参数。
type WorldSpec struct {
	Seed      int64
	Width     uint32
	Height    uint32
	Provinces uint32
	Factions  []string
}

// GenerateWorld 生成地图并放置初始势力，用于仓储里还没有该世界时。
func (s *WorldService) GenerateWorld(id entity.WorldID, gen *WorldGenerator, spec WorldSpec) *entity.World {
	w := entity.NewWorld(id, spec.Seed, gen.Generate(spec.Width, spec.Height, spec.Provinces))
	s.SpawnFactions(w, spec.Factions)
	s.log.Info("world generated",
		zap.Int("world_id", int(id)),
		zap.Int("provinces", w.Map().Len()),
		zap.Int("factions", len(spec.Factions)),
	)
	return w
}
