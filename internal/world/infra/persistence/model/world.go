package model

import (
	"time"

	gd "DotWars/internal/game/domain"
	"DotWars/internal/world/entity"
	"DotWars/internal/world/entity/domain"
)

// WorldDoc MongoDB 中的世界文档，一个世界一条。
type WorldDoc struct {
	WorldID   int           `bson:"_id"`
	Version   uint64        `bson:"version"`
	Seed      int64         `bson:"seed"`
	Turn      uint32        `bson:"turn"`
	Factions  []FactionDoc  `bson:"factions"`
	Provinces []ProvinceDoc `bson:"provinces"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

type FactionDoc struct {
	ID       string      `bson:"id"`
	Name     string      `bson:"name"`
	Color    string      `bson:"color"`
	Treasury gd.Resource `bson:"treasury"`
}

type ProvinceDoc struct {
	ID          string        `bson:"id"`
	Name        string        `bson:"name"`
	Owner       string        `bson:"owner,omitempty"`
	Position    gd.Position   `bson:"position"`
	Population  uint32        `bson:"population"`
	Resources   gd.Resource   `bson:"resources"`
	Buildings   []BuildingDoc `bson:"buildings"`
	Adjacent    []string      `bson:"adjacent"`
	TerrainType string        `bson:"terrain_type"`
}

type BuildingDoc struct {
	BuildingType         string  `bson:"building_type"`
	Level                uint32  `bson:"level"`
	ConstructionProgress float32 `bson:"construction_progress"`
}

func WorldSnapshotToDoc(s *entity.WorldPersistSnapshot, now time.Time) WorldDoc {
	doc := WorldDoc{
		WorldID:   int(s.WorldID),
		Version:   s.Version,
		Seed:      s.Seed,
		Turn:      s.Turn,
		Factions:  make([]FactionDoc, 0, len(s.Factions)),
		Provinces: make([]ProvinceDoc, 0, len(s.Provinces)),
		UpdatedAt: now,
	}
	for _, f := range s.Factions {
		doc.Factions = append(doc.Factions, FactionDoc{
			ID:       f.ID.String(),
			Name:     f.Name,
			Color:    f.Color,
			Treasury: f.Treasury,
		})
	}
	for i := range s.Provinces {
		doc.Provinces = append(doc.Provinces, provinceToDoc(&s.Provinces[i]))
	}
	return doc
}

func provinceToDoc(p *domain.Province) ProvinceDoc {
	d := ProvinceDoc{
		ID:          p.ID.String(),
		Name:        p.Name,
		Position:    p.Position,
		Population:  p.Population,
		Resources:   p.Resources,
		Buildings:   make([]BuildingDoc, 0, len(p.Buildings)),
		Adjacent:    make([]string, 0, len(p.AdjacentProvinces)),
		TerrainType: p.TerrainType.String(),
	}
	if p.Owner != nil {
		d.Owner = p.Owner.String()
	}
	for _, b := range p.Buildings {
		d.Buildings = append(d.Buildings, BuildingDoc{
			BuildingType:         b.BuildingType.String(),
			Level:                b.Level,
			ConstructionProgress: b.ConstructionProgress,
		})
	}
	for _, n := range p.AdjacentProvinces {
		d.Adjacent = append(d.Adjacent, n.String())
	}
	return d
}

// WorldDocToSnapshot 文档还原成快照，任何 id 或枚举解析失败都视为数据损坏。
func WorldDocToSnapshot(doc WorldDoc) (*entity.WorldPersistSnapshot, error) {
	s := &entity.WorldPersistSnapshot{
		Version: doc.Version,
		WorldID: entity.WorldID(doc.WorldID),
		Seed:    doc.Seed,
		Turn:    doc.Turn,
	}
	for _, fd := range doc.Factions {
		id, err := gd.ParseFactionID(fd.ID)
		if err != nil {
			return nil, err
		}
		s.Factions = append(s.Factions, gd.Faction{ID: id, Name: fd.Name, Color: fd.Color, Treasury: fd.Treasury})
	}
	for _, pd := range doc.Provinces {
		p, err := docToProvince(pd)
		if err != nil {
			return nil, err
		}
		s.Provinces = append(s.Provinces, *p)
	}
	return s, nil
}

func docToProvince(d ProvinceDoc) (*domain.Province, error) {
	id, err := gd.ParseProvinceID(d.ID)
	if err != nil {
		return nil, err
	}
	terrain, err := domain.ParseTerrainType(d.TerrainType)
	if err != nil {
		return nil, err
	}
	p := &domain.Province{
		ID:          id,
		Name:        d.Name,
		Position:    d.Position,
		Population:  d.Population,
		Resources:   d.Resources,
		TerrainType: terrain,
	}
	if d.Owner != "" {
		owner, err := gd.ParseFactionID(d.Owner)
		if err != nil {
			return nil, err
		}
		p.Owner = &owner
	}
	for _, bd := range d.Buildings {
		bt, err := domain.ParseBuildingType(bd.BuildingType)
		if err != nil {
			return nil, err
		}
		p.Buildings = append(p.Buildings, domain.Building{
			BuildingType:         bt,
			Level:                bd.Level,
			ConstructionProgress: bd.ConstructionProgress,
		})
	}
	for _, raw := range d.Adjacent {
		n, err := gd.ParseProvinceID(raw)
		if err != nil {
			return nil, err
		}
		p.AdjacentProvinces = append(p.AdjacentProvinces, n)
	}
	return p, nil
}
