package actors

import (
	"DotWars/internal/shared/actor/messages"
	"DotWars/internal/world/app/port"
	"DotWars/internal/world/dc"
	"DotWars/internal/world/entity"
	"DotWars/internal/world/service"
	"DotWars/modules/kit/errx"
	"DotWars/modules/kit/logx"
	"time"

	"github.com/asynkron/protoactor-go/actor"
)

type WorldID = entity.WorldID

// Deps world actor 的依赖。
type Deps struct {
	Repo       port.WorldRepository
	Service    *service.WorldService
	Bootstrap  dc.Bootstrap
	FlushEvery time.Duration
	Logger     logx.Logger
}

// ManagerActor 按 world id 持有 world actor，每个世界只有一个 actor 修改它。
type ManagerActor struct {
	deps        Deps
	worldActors map[WorldID]*actor.PID
}

func NewManagerActor(deps Deps) *ManagerActor {
	if deps.Service == nil {
		deps.Service = service.NewWorldService()
	}
	if deps.Logger == nil {
		deps.Logger = logx.Nop()
	}
	return &ManagerActor{
		deps:        deps,
		worldActors: make(map[WorldID]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Terminated:
		for id, pid := range m.worldActors {
			if pid.Equal(msg.Who) {
				delete(m.worldActors, id)
			}
		}
	case messages.WorldMessage:
		if msg == nil {
			ctx.Respond(messages.Fail(errx.ErrReqParamERR))
			return
		}
		ctx.Forward(m.getOrSpawn(ctx, WorldID(msg.WorldID())))
	}
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, worldID WorldID) *actor.PID {
	if pid, ok := m.worldActors[worldID]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewWorldActor(worldID, m.deps)
	})
	pid := ctx.Spawn(props)
	ctx.Watch(pid)
	m.worldActors[worldID] = pid
	return pid
}
