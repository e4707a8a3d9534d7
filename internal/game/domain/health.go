package domain

// Health 满足 0 <= Current <= Max，Damage/Heal 都会夹到这个区间。
type Health struct {
	Current float32 `json:"current" bson:"current"`
	Max     float32 `json:"max" bson:"max"`
}

func NewHealth(max float32) Health {
	if max < 0 {
		max = 0
	}
	return Health{Current: max, Max: max}
}

func (h *Health) IsAlive() bool {
	return h.Current > 0
}

func (h *Health) Damage(amount float32) {
	h.Current = clamp(h.Current-amount, 0, h.Max)
}

func (h *Health) Heal(amount float32) {
	h.Current = clamp(h.Current+amount, 0, h.Max)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
