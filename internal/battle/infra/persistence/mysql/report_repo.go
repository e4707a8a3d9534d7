package mysql

import (
	"DotWars/internal/battle/entity"
	"DotWars/internal/battle/infra/persistence/model"
	gd "DotWars/internal/game/domain"
	"DotWars/modules/kit/errx"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// Migrate 建表，启动时调用一次。
func (r *ReportRepo) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&model.BattleReport{})
}

func (r *ReportRepo) Save(ctx context.Context, rep *entity.BattleReport) error {
	if rep == nil {
		return nil
	}
	row, err := model.ReportToRow(rep)
	if err != nil {
		return errx.ErrInternal.WithCause(err).WithData("battle_id", rep.BattleID)
	}
	// 同一场战斗重复归档时覆盖
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(row).Error
	if err != nil {
		return errx.ErrUnavailable.WithCause(err).WithData("battle_id", rep.BattleID)
	}
	return nil
}

func (r *ReportRepo) Get(ctx context.Context, battleID string) (*entity.BattleReport, error) {
	var row model.BattleReport
	err := r.db.WithContext(ctx).Where("battle_id = ?", battleID).First(&row).Error

	switch {
	case err == nil:
		return model.RowToReport(&row)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, gd.ErrBattleNotFound.WithData("battle_id", battleID)
	default:
		return nil, errx.ErrUnavailable.WithCause(err).WithData("battle_id", battleID)
	}
}

func (r *ReportRepo) List(ctx context.Context, limit int) ([]*entity.BattleReport, error) {
	if limit <= 0 {
		limit = model.DefaultListLimit
	}
	var rows []model.BattleReport
	err := r.db.WithContext(ctx).
		Order("resolved_at DESC").
		Order("battle_id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err)
	}
	out := make([]*entity.BattleReport, 0, len(rows))
	for i := range rows {
		rep, err := model.RowToReport(&rows[i])
		if err != nil {
			return nil, errx.ErrInternal.WithCause(err)
		}
		out = append(out, rep)
	}
	return out, nil
}
