package port

import (
	"DotWars/internal/battle/entity"
	"context"
)

// BattleReportRepository 战报归档。战斗结束后写一次，之后只读。
type BattleReportRepository interface {
	Save(ctx context.Context, r *entity.BattleReport) error
	// Get 不存在时返回 ErrBattleNotFound。
	Get(ctx context.Context, battleID string) (*entity.BattleReport, error)
	// List 按结束时间倒序，limit<=0 时用默认值。
	List(ctx context.Context, limit int) ([]*entity.BattleReport, error)
}
