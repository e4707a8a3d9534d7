package domain

import (
	"encoding/json"
	"fmt"

	gd "DotWars/internal/game/domain"
)

// Battlefield 战场尺寸和地形效果。
type Battlefield struct {
	Width          float32         `json:"width"`
	Height         float32         `json:"height"`
	TerrainEffects []TerrainEffect `json:"terrain_effects"`
}

// TerrainEffect 以 Position 为圆心、Radius 为半径的区域效果。
type TerrainEffect struct {
	Position   gd.Position       `json:"position"`
	Radius     float32           `json:"radius"`
	EffectType TerrainEffectType `json:"effect_type"`
}

// Covers 点是否落在效果范围内（含边界）。
func (e TerrainEffect) Covers(p gd.Position) bool {
	return e.Position.DistanceTo(p) <= e.Radius
}

// EffectsAt 返回覆盖该点的所有效果，按定义顺序。
func (f *Battlefield) EffectsAt(p gd.Position) []TerrainEffect {
	var out []TerrainEffect
	for _, e := range f.TerrainEffects {
		if e.Covers(p) {
			out = append(out, e)
		}
	}
	return out
}

// TerrainEffectKind 地形效果标签。
type TerrainEffectKind uint8

const (
	EffectHighGround TerrainEffectKind = iota
	EffectForest
	EffectRiver
	EffectFortification
)

var effectNames = map[TerrainEffectKind]string{
	EffectHighGround:    "HighGround",
	EffectForest:        "Forest",
	EffectRiver:         "River",
	EffectFortification: "Fortification",
}

func (k TerrainEffectKind) String() string {
	if s, ok := effectNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TerrainEffectKind(%d)", uint8(k))
}

// TerrainEffectType 带参数的地形效果，按 Kind 只读取对应字段：
//   - HighGround: DefenseBonus
//   - Forest: Concealment
//   - River: MovementPenalty
//   - Fortification: DefenseBonus, AttackBonus
//
// JSON 形如 {"Fortification":{"defense_bonus":0.3,"attack_bonus":0.1}}。
type TerrainEffectType struct {
	Kind            TerrainEffectKind
	DefenseBonus    float32
	AttackBonus     float32
	Concealment     float32
	MovementPenalty float32
}

func HighGround(defenseBonus float32) TerrainEffectType {
	return TerrainEffectType{Kind: EffectHighGround, DefenseBonus: defenseBonus}
}

func Forest(concealment float32) TerrainEffectType {
	return TerrainEffectType{Kind: EffectForest, Concealment: concealment}
}

func River(movementPenalty float32) TerrainEffectType {
	return TerrainEffectType{Kind: EffectRiver, MovementPenalty: movementPenalty}
}

func Fortification(defenseBonus, attackBonus float32) TerrainEffectType {
	return TerrainEffectType{Kind: EffectFortification, DefenseBonus: defenseBonus, AttackBonus: attackBonus}
}

type effectPayload struct {
	DefenseBonus    *float32 `json:"defense_bonus,omitempty"`
	AttackBonus     *float32 `json:"attack_bonus,omitempty"`
	Concealment     *float32 `json:"concealment,omitempty"`
	MovementPenalty *float32 `json:"movement_penalty,omitempty"`
}

func (t TerrainEffectType) MarshalJSON() ([]byte, error) {
	var p effectPayload
	switch t.Kind {
	case EffectHighGround:
		p.DefenseBonus = &t.DefenseBonus
	case EffectForest:
		p.Concealment = &t.Concealment
	case EffectRiver:
		p.MovementPenalty = &t.MovementPenalty
	case EffectFortification:
		p.DefenseBonus = &t.DefenseBonus
		p.AttackBonus = &t.AttackBonus
	default:
		return nil, fmt.Errorf("unknown terrain effect %d", uint8(t.Kind))
	}
	return json.Marshal(map[string]effectPayload{t.Kind.String(): p})
}

func (t *TerrainEffectType) UnmarshalJSON(b []byte) error {
	var tagged map[string]effectPayload
	if err := json.Unmarshal(b, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return fmt.Errorf("terrain effect must have exactly one variant: %s", b)
	}
	for name, p := range tagged {
		var kind TerrainEffectKind
		found := false
		for k, v := range effectNames {
			if v == name {
				kind, found = k, true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown terrain effect %q", name)
		}
		out := TerrainEffectType{Kind: kind}
		switch kind {
		case EffectHighGround:
			out.DefenseBonus = deref(p.DefenseBonus)
		case EffectForest:
			out.Concealment = deref(p.Concealment)
		case EffectRiver:
			out.MovementPenalty = deref(p.MovementPenalty)
		case EffectFortification:
			out.DefenseBonus = deref(p.DefenseBonus)
			out.AttackBonus = deref(p.AttackBonus)
		}
		*t = out
	}
	return nil
}

func deref(p *float32) float32 {
	if p == nil {
		return 0
	}
	return *p
}
