package domain

import (
	"encoding/json"
	"fmt"

	gd "DotWars/internal/game/domain"
)

// BattlePhase 战斗阶段：Deployment → Combat → Resolved，只能前进一步。
type BattlePhase uint8

const (
	PhaseDeployment BattlePhase = iota
	PhaseCombat
	PhaseResolved
)

var phaseNames = map[BattlePhase]string{
	PhaseDeployment: "Deployment",
	PhaseCombat:     "Combat",
	PhaseResolved:   "Resolved",
}

func (p BattlePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return fmt.Sprintf("BattlePhase(%d)", uint8(p))
}

func ParseBattlePhase(s string) (BattlePhase, error) {
	for k, v := range phaseNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown battle phase %q", s)
}

func (p BattlePhase) MarshalJSON() ([]byte, error) {
	if _, ok := phaseNames[p]; !ok {
		return nil, fmt.Errorf("unknown battle phase %d", uint8(p))
	}
	return json.Marshal(p.String())
}

func (p *BattlePhase) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseBattlePhase(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Side 交战方。
type Side uint8

const (
	SideAttacker Side = iota
	SideDefender
)

func (s Side) String() string {
	if s == SideDefender {
		return "defender"
	}
	return "attacker"
}

func ParseSide(v string) (Side, error) {
	switch v {
	case "attacker":
		return SideAttacker, nil
	case "defender":
		return SideDefender, nil
	default:
		return 0, fmt.Errorf("unknown side %q", v)
	}
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Battle 一场战斗。单位 id 只是到外部部队登记表的查找键，Battle 不持有部队数据。
type Battle struct {
	ID            string       `json:"id"`
	Attacker      gd.FactionID `json:"attacker"`
	Defender      gd.FactionID `json:"defender"`
	AttackerUnits []gd.UnitID  `json:"attacker_units"`
	DefenderUnits []gd.UnitID  `json:"defender_units"`
	Battlefield   Battlefield  `json:"battlefield"`
	Phase         BattlePhase  `json:"phase"`
	Turn          uint32       `json:"turn"`
}

func NewBattle(id string, attacker, defender gd.FactionID, field Battlefield) *Battle {
	return &Battle{
		ID:          id,
		Attacker:    attacker,
		Defender:    defender,
		Battlefield: field,
		Phase:       PhaseDeployment,
	}
}

// Deploy 部署阶段把部队编入一方。
func (b *Battle) Deploy(side Side, id gd.UnitID) error {
	if b.Phase != PhaseDeployment {
		return gd.ErrInvalidPhaseTransition.
			WithData("battle_id", b.ID).
			WithData("phase", b.Phase.String())
	}
	if cur, ok := b.SideOfUnit(id); ok && cur != side {
		return gd.ErrInvalidUnit.
			WithData("battle_id", b.ID).
			WithData("unit_id", id.String())
	}
	if side == SideDefender {
		b.DefenderUnits = appendUnique(b.DefenderUnits, id)
	} else {
		b.AttackerUnits = appendUnique(b.AttackerUnits, id)
	}
	return nil
}

// SideOf 部队属于哪一方。
func (b *Battle) SideOf(f gd.FactionID) (Side, bool) {
	switch f {
	case b.Attacker:
		return SideAttacker, true
	case b.Defender:
		return SideDefender, true
	default:
		return 0, false
	}
}

// SideOfUnit 部队已编入哪一方。
func (b *Battle) SideOfUnit(id gd.UnitID) (Side, bool) {
	for _, u := range b.AttackerUnits {
		if u == id {
			return SideAttacker, true
		}
	}
	for _, u := range b.DefenderUnits {
		if u == id {
			return SideDefender, true
		}
	}
	return 0, false
}

// Units 返回一方的部队 id。
func (b *Battle) Units(side Side) []gd.UnitID {
	if side == SideDefender {
		return b.DefenderUnits
	}
	return b.AttackerUnits
}

// BeginCombat Deployment → Combat。
func (b *Battle) BeginCombat() error {
	return b.transition(PhaseDeployment, PhaseCombat)
}

// Resolve Combat → Resolved，Resolved 是终态。
func (b *Battle) Resolve() error {
	return b.transition(PhaseCombat, PhaseResolved)
}

// CompleteRound 一轮 Combat 结束后回合数 +1。
func (b *Battle) CompleteRound() {
	if b.Phase == PhaseCombat {
		b.Turn++
	}
}

func (b *Battle) IsResolved() bool {
	return b.Phase == PhaseResolved
}

func (b *Battle) transition(from, to BattlePhase) error {
	if b.Phase != from {
		return gd.ErrInvalidPhaseTransition.
			WithData("battle_id", b.ID).
			WithData("from", b.Phase.String()).
			WithData("to", to.String())
	}
	b.Phase = to
	return nil
}

func appendUnique(ids []gd.UnitID, id gd.UnitID) []gd.UnitID {
	for _, x := range ids {
		if x == id {
			return ids
		}
	}
	return append(ids, id)
}
