package dc

import (
	gd "DotWars/internal/game/domain"
	"DotWars/internal/world/app/port"
	"DotWars/internal/world/entity"
	"DotWars/modules/kit/logx"
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultFlushEvery = 3000 * time.Millisecond
	saveTimeout       = 5 * time.Second
	retryBackoff      = 200 * time.Millisecond
)

type WorldID = entity.WorldID

// Bootstrap 仓储里没有该世界时用来生成新世界。
type Bootstrap func(id WorldID) (*entity.World, error)

// WorldDC 世界的写回缓存：actor 修改实体后调用 Flush，
// 后台协程只保留最新版本的快照并顺序写库，失败时重排重试。
type WorldDC struct {
	repo       port.WorldRepository
	entity     *entity.World
	flushEvery time.Duration
	log        logx.Logger

	mu      sync.Mutex
	pending *entity.WorldPersistSnapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewWorldDC(repo port.WorldRepository, flushEvery time.Duration, log logx.Logger) *WorldDC {
	if flushEvery <= 0 {
		flushEvery = defaultFlushEvery
	}
	if log == nil {
		log = logx.Nop()
	}
	d := &WorldDC{
		repo:       repo,
		flushEvery: flushEvery,
		log:        log,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

// Load 从仓储加载；不存在时用 bootstrap 生成并立即安排一次写库。
func (d *WorldDC) Load(ctx context.Context, worldID WorldID, bootstrap Bootstrap) (*entity.World, error) {
	if d.repo == nil {
		return nil, errors.New("world repository is nil")
	}
	world, err := d.repo.LoadWorld(ctx, worldID)
	if errors.Is(err, gd.ErrWorldNotFound) && bootstrap != nil {
		world, err = bootstrap(worldID)
		if err == nil {
			world.MarkDirty()
		}
	}
	if err != nil {
		return nil, err
	}
	d.entity = world
	if world.Dirty() {
		_ = d.Flush(ctx)
	}
	return world, nil
}

func (d *WorldDC) Flush(ctx context.Context) error {
	_ = ctx
	if !d.IsDirty() {
		return nil
	}
	if d.repo == nil {
		return errors.New("world repository is nil")
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return nil
	}
	d.enqueueLatest(s)
	return nil
}

func (d *WorldDC) IsDirty() bool {
	if d.entity == nil {
		return false
	}
	return d.entity.Dirty()
}

func (d *WorldDC) Entity() *entity.World {
	return d.entity
}

func (d *WorldDC) FlushEvery() time.Duration {
	return d.flushEvery
}

// Close 刷出最后一次修改并等待后台写完。
func (d *WorldDC) Close(ctx context.Context) error {
	_ = d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *WorldDC) buildNextSnapshot() (*entity.WorldPersistSnapshot, bool) {
	if d.entity == nil {
		return nil, false
	}
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	s, ok := d.entity.BuildPersistSnapshot(version)
	if !ok {
		return nil, false
	}
	d.entity.ClearDirty()
	return s, true
}

func (d *WorldDC) enqueueLatest(s *entity.WorldPersistSnapshot) {
	if s == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *WorldDC) popPending() *entity.WorldPersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

// requeueOnError 关闭后也要重排，保证 Close 前的最后一版能写出去。
func (d *WorldDC) requeueOnError(s *entity.WorldPersistSnapshot) {
	d.mu.Lock()
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *WorldDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending(false)
		case <-d.stop:
			d.consumePending(true)
			return
		}
	}
}

func (d *WorldDC) consumePending(closing bool) {
	attempts := 0
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := d.repo.Save(ctx, s)
		cancel()
		if err == nil {
			attempts = 0
			continue
		}
		attempts++
		d.log.Error("world snapshot save failed",
			zap.Int("world_id", int(s.WorldID)),
			zap.Uint64("version", s.Version),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
		// 关闭阶段最多重试 3 次，避免存储长时间不可用时卡死退出流程
		if closing && attempts >= 3 {
			return
		}
		// 写库失败时重排当前快照；若已有更新快照，会被更高 version 覆盖。
		d.requeueOnError(s)
		time.Sleep(retryBackoff)
	}
}
