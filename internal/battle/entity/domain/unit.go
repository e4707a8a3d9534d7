package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	gd "DotWars/internal/game/domain"
)

// UnitKind 兵种标签。
type UnitKind uint8

const (
	KindInfantry UnitKind = iota
	KindCavalry
	KindArchers
	KindArtillery
	KindSpecial
)

var unitKindNames = map[UnitKind]string{
	KindInfantry:  "Infantry",
	KindCavalry:   "Cavalry",
	KindArchers:   "Archers",
	KindArtillery: "Artillery",
	KindSpecial:   "Special",
}

func (k UnitKind) String() string {
	if s, ok := unitKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("UnitKind(%d)", uint8(k))
}

// UnitType 兵种。Special 带一个名字，其余兵种 Name 为空。
// JSON 形如 "Infantry" 或 {"Special":"Praetorian"}。
type UnitType struct {
	Kind UnitKind
	Name string
}

var (
	Infantry  = UnitType{Kind: KindInfantry}
	Cavalry   = UnitType{Kind: KindCavalry}
	Archers   = UnitType{Kind: KindArchers}
	Artillery = UnitType{Kind: KindArtillery}
)

// Special 独特兵种。
func Special(name string) UnitType {
	return UnitType{Kind: KindSpecial, Name: name}
}

// UnitStats 兵种基础属性，Cost 是招募一支部队的价格。
type UnitStats struct {
	Attack  uint32      `json:"attack"`
	Defense uint32      `json:"defense"`
	Health  uint32      `json:"health"`
	Speed   float32     `json:"speed"`
	Range   float32     `json:"range"`
	Cost    gd.Resource `json:"cost"`
}

// Stats 兵种属性表。
func (u UnitType) Stats() UnitStats {
	switch u.Kind {
	case KindInfantry:
		return UnitStats{Attack: 15, Defense: 12, Health: 100, Speed: 50, Range: 1,
			Cost: gd.Resource{Gold: 100, Manpower: 10}}
	case KindCavalry:
		return UnitStats{Attack: 20, Defense: 8, Health: 120, Speed: 100, Range: 1,
			Cost: gd.Resource{Gold: 200, Manpower: 15}}
	case KindArchers:
		return UnitStats{Attack: 18, Defense: 6, Health: 80, Speed: 40, Range: 150,
			Cost: gd.Resource{Gold: 120, Manpower: 12}}
	case KindArtillery:
		return UnitStats{Attack: 35, Defense: 5, Health: 60, Speed: 20, Range: 300,
			Cost: gd.Resource{Gold: 500, Materials: 100, Manpower: 8}}
	default:
		return UnitStats{Attack: 25, Defense: 15, Health: 150, Speed: 60, Range: 50,
			Cost: gd.Resource{Gold: 800, Manpower: 25}}
	}
}

func (u UnitType) Valid() bool {
	_, ok := unitKindNames[u.Kind]
	return ok && (u.Kind == KindSpecial || u.Name == "")
}

func (u UnitType) String() string {
	if u.Kind == KindSpecial {
		return "Special(" + u.Name + ")"
	}
	return u.Kind.String()
}

// ParseUnitType 解析 "Infantry" 之类的名字；"Special:<name>" 表示独特兵种。
func ParseUnitType(s string) (UnitType, error) {
	if name, ok := strings.CutPrefix(s, "Special:"); ok {
		return Special(name), nil
	}
	for k, v := range unitKindNames {
		if v == s && k != KindSpecial {
			return UnitType{Kind: k}, nil
		}
	}
	return UnitType{}, fmt.Errorf("unknown unit type %q", s)
}

func (u UnitType) MarshalJSON() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("invalid unit type %v", u.Kind)
	}
	if u.Kind == KindSpecial {
		return json.Marshal(map[string]string{"Special": u.Name})
	}
	return json.Marshal(u.Kind.String())
}

func (u *UnitType) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var tagged map[string]string
		if err := json.Unmarshal(b, &tagged); err != nil {
			return err
		}
		name, ok := tagged["Special"]
		if !ok || len(tagged) != 1 {
			return fmt.Errorf("unknown unit type %s", b)
		}
		*u = Special(name)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseUnitType(s)
	if err != nil || v.Kind == KindSpecial {
		return fmt.Errorf("unknown unit type %q", s)
	}
	*u = v
	return nil
}

// Unit 一支部队。0 <= Count <= MaxCount，Morale 在 [0,100]。
// 战斗属性单独放在 CombatStats，按 ID 关联。
type Unit struct {
	ID         gd.UnitID    `json:"id"`
	UnitType   UnitType     `json:"unit_type"`
	Count      uint32       `json:"count"`
	MaxCount   uint32       `json:"max_count"`
	Morale     float32      `json:"morale"`
	Experience uint32       `json:"experience"`
	Formation  Formation    `json:"formation"`
	Faction    gd.FactionID `json:"faction"`
}

// MaxMorale 士气上限。
const MaxMorale float32 = 100

// NewUnit 满员部队，阵型 Line。
func NewUnit(faction gd.FactionID, unitType UnitType, size uint32, morale float32) *Unit {
	if morale > MaxMorale {
		morale = MaxMorale
	}
	if morale < 0 {
		morale = 0
	}
	return &Unit{
		ID:        gd.NewUnitID(),
		UnitType:  unitType,
		Count:     size,
		MaxCount:  size,
		Morale:    morale,
		Formation: FormationLine,
		Faction:   faction,
	}
}

// Strength 剩余兵力比例；MaxCount 为 0 时视为 0。
func (u *Unit) Strength() float32 {
	if u.MaxCount == 0 {
		return 0
	}
	return float32(u.Count) / float32(u.MaxCount)
}
