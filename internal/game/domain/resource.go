package domain

// 阵营创建时的初始库存
const (
	StartingGold      = 1000
	StartingFood      = 500
	StartingMaterials = 300
	StartingManpower  = 100
)

// Resource 是四种可互换资源的账本（金币、粮食、材料、人力）。
// 零值是空账本，造价/产出表都以零值为基础只填写非零字段。
type Resource struct {
	Gold      int64 `json:"gold" bson:"gold"`
	Food      int64 `json:"food" bson:"food"`
	Materials int64 `json:"materials" bson:"materials"`
	Manpower  int64 `json:"manpower" bson:"manpower"`
}

// NewResource 返回阵营初始库存 1000/500/300/100。
func NewResource() Resource {
	return Resource{
		Gold:      StartingGold,
		Food:      StartingFood,
		Materials: StartingMaterials,
		Manpower:  StartingManpower,
	}
}

// CanAfford 当且仅当四项都不少于 cost 时返回 true。
func (r *Resource) CanAfford(cost Resource) bool {
	return r.Gold >= cost.Gold &&
		r.Food >= cost.Food &&
		r.Materials >= cost.Materials &&
		r.Manpower >= cost.Manpower
}

// Subtract 是原子扣除：负担不起时不做任何修改并返回 false。
func (r *Resource) Subtract(cost Resource) bool {
	if !r.CanAfford(cost) {
		return false
	}
	r.Gold -= cost.Gold
	r.Food -= cost.Food
	r.Materials -= cost.Materials
	r.Manpower -= cost.Manpower
	return true
}

// Add 无条件累加，没有上限。
func (r *Resource) Add(income Resource) {
	r.Gold += income.Gold
	r.Food += income.Food
	r.Materials += income.Materials
	r.Manpower += income.Manpower
}

// Scale 按等级线性放大：base * level。造价和产出都走这里，必须保持线性。
func (r Resource) Scale(level uint32) Resource {
	l := int64(level)
	return Resource{
		Gold:      r.Gold * l,
		Food:      r.Food * l,
		Materials: r.Materials * l,
		Manpower:  r.Manpower * l,
	}
}

func (r Resource) IsZero() bool {
	return r == Resource{}
}
