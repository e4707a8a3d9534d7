package actors

import (
	"DotWars/internal/shared/actor/messages"
	"DotWars/internal/world/dc"
	"DotWars/internal/world/entity"
	"DotWars/internal/world/service"
	"DotWars/modules/kit/errx"
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// WorldActor 独占一个 World，所有读写都在 Receive 里串行完成。
type WorldActor struct {
	state      State
	worldID    WorldID
	deps       Deps
	dc         *dc.WorldDC
	entity     *entity.World
	dispatcher *Dispatcher
	flushStop  chan struct{}
	loadErr    error
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

func NewWorldActor(worldID WorldID, deps Deps) *WorldActor {
	return &WorldActor{
		state:      None,
		worldID:    worldID,
		deps:       deps,
		dc:         dc.NewWorldDC(deps.Repo, deps.FlushEvery, deps.Logger),
		dispatcher: NewDispatcher(),
	}
}

func (p *WorldActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopFlushLoop()
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := p.dc.Close(closeCtx); err != nil {
			p.deps.Logger.Error("world dc close failed", zap.Int("world_id", int(p.worldID)), zap.Error(err))
		}
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopFlushLoop()
		p.state = Offline
		return
	case *actor.Restarting:
		p.stopFlushLoop()
		p.state = Init
		return
	case flushTick:
		if p.state != Online {
			return
		}
		if err := p.dc.Flush(context.Background()); err != nil {
			p.deps.Logger.Error("world periodic flush failed", zap.Int("world_id", int(p.worldID)), zap.Error(err))
		}
		return
	case messages.WorldMessage:
		if p.state != Online {
			err := errx.ErrUnavailable.WithData("world_id", int(p.worldID))
			if p.loadErr != nil {
				err = err.WithCause(p.loadErr)
			}
			ctx.Respond(messages.Fail(err))
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
		// 每个写请求之后尝试排一次写库，后台只保留最新版本
		if p.entity.Dirty() {
			_ = p.dc.Flush(context.Background())
		}
	default:
		return
	}
}

func (p *WorldActor) init(ctx actor.Context) {
	e, err := p.dc.Load(context.Background(), p.worldID, p.deps.Bootstrap)
	if err != nil {
		p.loadErr = err
		p.state = Offline
		p.deps.Logger.Error("world load failed", zap.Int("world_id", int(p.worldID)), zap.Error(err))
		return
	}
	p.state = Online
	p.entity = e
	p.startFlushLoop(ctx)
	p.deps.Logger.Info("world online",
		zap.Int("world_id", int(p.worldID)),
		zap.Int("provinces", e.Map().Len()),
		zap.Int("factions", len(e.Factions())),
	)
}

func (p *WorldActor) Entity() *entity.World {
	return p.entity
}

func (p *WorldActor) Service() *service.WorldService {
	return p.deps.Service
}

func (p *WorldActor) startFlushLoop(ctx actor.Context) {
	if p.flushStop != nil {
		return
	}
	interval := p.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	p.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(p.flushStop, interval)
}

func (p *WorldActor) stopFlushLoop() {
	if p.flushStop == nil {
		return
	}
	close(p.flushStop)
	p.flushStop = nil
}
