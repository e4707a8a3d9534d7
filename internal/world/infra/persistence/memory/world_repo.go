package memory

import (
	gd "DotWars/internal/game/domain"
	"DotWars/internal/world/entity"
	"context"
	"sync"
)

// WorldRepository 进程内仓储，开发和测试使用。
type WorldRepository struct {
	mu     sync.RWMutex
	worlds map[entity.WorldID]*entity.WorldPersistSnapshot
}

func NewWorldRepository() *WorldRepository {
	return &WorldRepository{worlds: make(map[entity.WorldID]*entity.WorldPersistSnapshot)}
}

func (r *WorldRepository) LoadWorld(ctx context.Context, id entity.WorldID) (*entity.World, error) {
	_ = ctx
	r.mu.RLock()
	s, ok := r.worlds[id]
	r.mu.RUnlock()
	if !ok {
		return nil, gd.ErrWorldNotFound.WithData("world_id", int(id))
	}
	return entity.RestoreWorld(s), nil
}

func (r *WorldRepository) Save(ctx context.Context, s *entity.WorldPersistSnapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.worlds[s.WorldID]; ok && old.Version > s.Version {
		return nil
	}
	r.worlds[s.WorldID] = s
	return nil
}

// Latest 返回最近一次保存的快照版本，测试用。
func (r *WorldRepository) Latest(id entity.WorldID) (uint64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.worlds[id]
	if !ok {
		return 0, false
	}
	return s.Version, true
}
