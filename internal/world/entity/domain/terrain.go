package domain

import (
	"encoding/json"
	"fmt"
)

// TerrainType 地形，决定移动代价和防御加成。
type TerrainType uint8

const (
	TerrainPlains TerrainType = iota
	TerrainForest
	TerrainMountains
	TerrainDesert
	TerrainSwamp
	TerrainCoast
)

// TerrainKinds 按固定顺序列出全部地形，地图生成器用下标选地形，顺序不能改。
var TerrainKinds = [...]TerrainType{
	TerrainPlains,
	TerrainForest,
	TerrainMountains,
	TerrainDesert,
	TerrainSwamp,
	TerrainCoast,
}

var terrainNames = map[TerrainType]string{
	TerrainPlains:    "Plains",
	TerrainForest:    "Forest",
	TerrainMountains: "Mountains",
	TerrainDesert:    "Desert",
	TerrainSwamp:     "Swamp",
	TerrainCoast:     "Coast",
}

// MovementCost 穿过该地形的移动代价倍率。
func (t TerrainType) MovementCost() float32 {
	switch t {
	case TerrainForest:
		return 1.5
	case TerrainMountains:
		return 2.0
	case TerrainDesert:
		return 1.8
	case TerrainSwamp:
		return 2.5
	default:
		return 1.0
	}
}

// DefenseBonus 驻守方的防御加成比例。
func (t TerrainType) DefenseBonus() float32 {
	switch t {
	case TerrainForest:
		return 0.2
	case TerrainMountains:
		return 0.5
	case TerrainDesert:
		return 0.1
	case TerrainSwamp:
		return 0.3
	default:
		return 0
	}
}

func (t TerrainType) String() string {
	if s, ok := terrainNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TerrainType(%d)", uint8(t))
}

func ParseTerrainType(s string) (TerrainType, error) {
	for k, v := range terrainNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown terrain type %q", s)
}

func (t TerrainType) MarshalJSON() ([]byte, error) {
	if _, ok := terrainNames[t]; !ok {
		return nil, fmt.Errorf("unknown terrain type %d", uint8(t))
	}
	return json.Marshal(t.String())
}

func (t *TerrainType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTerrainType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
