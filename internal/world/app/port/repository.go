package port

import (
	"DotWars/internal/world/entity"
	"context"
)

// WorldRepository 世界快照的持久化。不存在时 LoadWorld 返回 domain.ErrWorldNotFound。
type WorldRepository interface {
	LoadWorld(ctx context.Context, id entity.WorldID) (*entity.World, error)
	Save(ctx context.Context, s *entity.WorldPersistSnapshot) error
}
