package domain

// CombatStats 战斗中实际使用的属性，和 Unit 分开存放，按 UnitID 关联。
type CombatStats struct {
	Attack   float32 `json:"attack"`
	Defense  float32 `json:"defense"`
	Accuracy float32 `json:"accuracy"`
	Evasion  float32 `json:"evasion"`
}

// NewCombatStats 按兵种属性表初始化，命中 1.0，闪避 0。
func NewCombatStats(t UnitType) CombatStats {
	s := t.Stats()
	return CombatStats{
		Attack:   float32(s.Attack),
		Defense:  float32(s.Defense),
		Accuracy: 1.0,
	}
}
