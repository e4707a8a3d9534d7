package domain

// Faction 是拥有省份和部队的势力，Treasury 是它的资源账本。
type Faction struct {
	ID       FactionID `json:"id"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	Treasury Resource  `json:"treasury"`
}

// NewFaction 创建势力，账本带初始库存。
func NewFaction(name, color string) *Faction {
	return &Faction{
		ID:       NewFactionID(),
		Name:     name,
		Color:    color,
		Treasury: NewResource(),
	}
}
