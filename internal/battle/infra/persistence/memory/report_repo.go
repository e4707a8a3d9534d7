package memory

import (
	"DotWars/internal/battle/entity"
	"DotWars/internal/battle/infra/persistence/model"
	gd "DotWars/internal/game/domain"
	"context"
	"sort"
	"sync"
)

// ReportRepository 进程内战报仓储。
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[string]*entity.BattleReport
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{reports: make(map[string]*entity.BattleReport)}
}

func (r *ReportRepository) Save(ctx context.Context, rep *entity.BattleReport) error {
	_ = ctx
	if rep == nil {
		return nil
	}
	cp := *rep
	r.mu.Lock()
	r.reports[rep.BattleID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *ReportRepository) Get(ctx context.Context, battleID string) (*entity.BattleReport, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.reports[battleID]
	if !ok {
		return nil, gd.ErrBattleNotFound.WithData("battle_id", battleID)
	}
	cp := *rep
	return &cp, nil
}

func (r *ReportRepository) List(ctx context.Context, limit int) ([]*entity.BattleReport, error) {
	_ = ctx
	if limit <= 0 {
		limit = model.DefaultListLimit
	}
	r.mu.RLock()
	out := make([]*entity.BattleReport, 0, len(r.reports))
	for _, rep := range r.reports {
		cp := *rep
		out = append(out, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].ResolvedAt.Equal(out[j].ResolvedAt) {
			return out[i].BattleID > out[j].BattleID
		}
		return out[i].ResolvedAt.After(out[j].ResolvedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
