package domain

import (
	"encoding/json"
	"testing"
)

func TestPosition_DistanceTo(t *testing.T) {
	a := NewPosition(0, 0)
	b := NewPosition(3, 4)
	if got := a.DistanceTo(b); got != 5 {
		t.Fatalf("got=%v", got)
	}
	if a.DistanceTo(b) != b.DistanceTo(a) {
		t.Fatalf("距离应对称")
	}
}

func TestHealth_夹在0与Max之间(t *testing.T) {
	h := NewHealth(100)
	h.Damage(30)
	if h.Current != 70 || !h.IsAlive() {
		t.Fatalf("got=%+v", h)
	}
	h.Heal(500)
	if h.Current != 100 {
		t.Fatalf("治疗不应超过上限, got=%v", h.Current)
	}
	h.Damage(1000)
	if h.Current != 0 || h.IsAlive() {
		t.Fatalf("伤害不应低于 0, got=%v", h.Current)
	}
}

func TestIDs_JSON字符串与map_key(t *testing.T) {
	id := NewProvinceID()
	m := map[ProvinceID]int{id: 7}
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[ProvinceID]int
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back[id] != 7 {
		t.Fatalf("round trip 失败: %s", raw)
	}
	parsed, err := ParseProvinceID(id.String())
	if err != nil || parsed != id {
		t.Fatalf("parse: %v %v", parsed, err)
	}
	if !(ProvinceID{}).IsZero() || id.IsZero() {
		t.Fatalf("IsZero 判断错误")
	}
}

func TestNewFaction_带初始库存(t *testing.T) {
	f := NewFaction("Red", "#ff0000")
	if f.Treasury != NewResource() || f.ID.IsZero() {
		t.Fatalf("got=%+v", f)
	}
}
