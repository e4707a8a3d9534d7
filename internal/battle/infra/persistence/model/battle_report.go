package model

import (
	"DotWars/internal/battle/entity"
	gd "DotWars/internal/game/domain"
	"encoding/json"
	"fmt"
	"time"
)

const DefaultListLimit = 50

// BattleReport 战报表的一行：常用查询字段单独成列，完整战报存 JSON。
type BattleReport struct {
	BattleID   string    `gorm:"column:battle_id;primaryKey;size:32" db:"battle_id"`
	Attacker   string    `gorm:"column:attacker;size:36;index" db:"attacker"`
	Defender   string    `gorm:"column:defender;size:36;index" db:"defender"`
	Winner     string    `gorm:"column:winner;size:36" db:"winner"`
	Reason     string    `gorm:"column:reason;size:32" db:"reason"`
	Turns      uint32    `gorm:"column:turns" db:"turns"`
	Payload    string    `gorm:"column:payload;type:mediumtext" db:"payload"`
	ResolvedAt time.Time `gorm:"column:resolved_at;index" db:"resolved_at"`
}

func (BattleReport) TableName() string {
	return "battle_reports"
}

func ReportToRow(r *entity.BattleReport) (*BattleReport, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal battle report %s: %w", r.BattleID, err)
	}
	row := &BattleReport{
		BattleID:   r.BattleID,
		Attacker:   r.Attacker.String(),
		Defender:   r.Defender.String(),
		Reason:     r.Reason,
		Turns:      r.Turns,
		Payload:    string(payload),
		ResolvedAt: r.ResolvedAt.UTC(),
	}
	if r.Winner != nil {
		row.Winner = r.Winner.String()
	}
	return row, nil
}

func RowToReport(row *BattleReport) (*entity.BattleReport, error) {
	var r entity.BattleReport
	if err := json.Unmarshal([]byte(row.Payload), &r); err != nil {
		return nil, fmt.Errorf("unmarshal battle report %s: %w", row.BattleID, err)
	}
	// 列和 payload 不一致时以列为准
	r.BattleID = row.BattleID
	r.Reason = row.Reason
	r.Turns = row.Turns
	r.ResolvedAt = row.ResolvedAt
	if row.Winner == "" {
		r.Winner = nil
	} else {
		w, err := gd.ParseFactionID(row.Winner)
		if err != nil {
			return nil, err
		}
		r.Winner = &w
	}
	return &r, nil
}
