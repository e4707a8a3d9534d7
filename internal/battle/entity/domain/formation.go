package domain

import (
	"encoding/json"
	"fmt"
)

// Formation 战术阵型。
type Formation uint8

const (
	FormationLine Formation = iota
	FormationColumn
	FormationSquare
	FormationWedge
	FormationSkirmish
)

// FormationModifiers 阵型对攻击、防御、速度、士气的倍率。
type FormationModifiers struct {
	Attack  float32 `json:"attack_modifier"`
	Defense float32 `json:"defense_modifier"`
	Speed   float32 `json:"speed_modifier"`
	Morale  float32 `json:"morale_modifier"`
}

// 平衡常量，不要改。
var formationTable = map[Formation]struct {
	name string
	mods FormationModifiers
}{
	FormationLine:     {"Line", FormationModifiers{Attack: 1.0, Defense: 1.0, Speed: 1.0, Morale: 1.0}},
	FormationColumn:   {"Column", FormationModifiers{Attack: 0.8, Defense: 0.7, Speed: 1.3, Morale: 1.1}},
	FormationSquare:   {"Square", FormationModifiers{Attack: 0.6, Defense: 1.5, Speed: 0.5, Morale: 1.2}},
	FormationWedge:    {"Wedge", FormationModifiers{Attack: 1.3, Defense: 0.8, Speed: 1.1, Morale: 0.9}},
	FormationSkirmish: {"Skirmish", FormationModifiers{Attack: 0.9, Defense: 1.2, Speed: 1.2, Morale: 0.8}},
}

// Modifiers 返回阵型倍率，未知阵型按 Line 处理。
func (f Formation) Modifiers() FormationModifiers {
	if e, ok := formationTable[f]; ok {
		return e.mods
	}
	return formationTable[FormationLine].mods
}

func (f Formation) String() string {
	if e, ok := formationTable[f]; ok {
		return e.name
	}
	return fmt.Sprintf("Formation(%d)", uint8(f))
}

func ParseFormation(s string) (Formation, error) {
	for k, v := range formationTable {
		if v.name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown formation %q", s)
}

func (f Formation) MarshalJSON() ([]byte, error) {
	if _, ok := formationTable[f]; !ok {
		return nil, fmt.Errorf("unknown formation %d", uint8(f))
	}
	return json.Marshal(f.String())
}

func (f *Formation) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseFormation(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}
