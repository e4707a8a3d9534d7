package actors

import (
	"DotWars/internal/battle/app/port"
	"DotWars/internal/battle/entity/domain"
	"DotWars/internal/battle/service"
	gd "DotWars/internal/game/domain"
	"DotWars/internal/shared/actor/messages"
	"DotWars/internal/shared/utils"
	"DotWars/modules/kit/errx"
	"DotWars/modules/kit/logx"
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const defaultIdleAfterResolve = time.Minute

// Deps battle actor 的依赖。
type Deps struct {
	Repo    port.BattleReportRepository
	Service *service.BattleService
	IDs     *utils.IDGenerator
	Logger  logx.Logger
	Now     func() time.Time
	// IdleAfterResolve 战斗结束后无请求多久回收 actor，之后只能从战报库查询。
	IdleAfterResolve time.Duration
}

// battleIdle 战斗 actor 结束后空闲，请 manager 回收。
type battleIdle struct {
	BattleID string
}

// ManagerActor 创建战斗并按 battle id 转发请求；已回收的战斗从战报库回答。
type ManagerActor struct {
	deps    Deps
	battles map[string]*actor.PID
}

func NewManagerActor(deps Deps) *ManagerActor {
	if deps.Logger == nil {
		deps.Logger = logx.Nop()
	}
	if deps.Service == nil {
		deps.Service = service.NewBattleService(nil, deps.Logger)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.IdleAfterResolve <= 0 {
		deps.IdleAfterResolve = defaultIdleAfterResolve
	}
	return &ManagerActor{deps: deps, battles: make(map[string]*actor.PID)}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Terminated:
		for id, pid := range m.battles {
			if pid.Equal(msg.Who) {
				delete(m.battles, id)
			}
		}
	case *battleIdle:
		if pid, ok := m.battles[msg.BattleID]; ok {
			delete(m.battles, msg.BattleID)
			ctx.Stop(pid)
		}
	case *messages.HBCreateBattle:
		m.create(ctx, msg)
	case *messages.HBListReports:
		m.list(ctx, msg)
	case messages.BattleMessage:
		if pid, ok := m.battles[msg.BattleID()]; ok {
			ctx.Forward(pid)
			return
		}
		m.archived(ctx, msg)
	}
}

func (m *ManagerActor) create(ctx actor.Context, msg *messages.HBCreateBattle) {
	if msg.Attacker == msg.Defender || msg.Attacker.IsZero() || msg.Defender.IsZero() {
		ctx.Respond(messages.Fail(errx.ErrReqParamERR.WithData("reason", "attacker and defender must be distinct factions")))
		return
	}
	if m.deps.IDs == nil {
		ctx.Respond(messages.Fail(errx.ErrInternal.WithData("reason", "battle id generator missing")))
		return
	}
	id := m.deps.IDs.NextString()
	b := domain.NewBattle(id, msg.Attacker, msg.Defender, msg.Battlefield)

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewBattleActor(b, m.deps)
	})
	pid := ctx.Spawn(props)
	ctx.Watch(pid)
	m.battles[id] = pid

	m.deps.Logger.Info("battle created",
		zap.String("battle_id", id),
		zap.String("attacker", msg.Attacker.String()),
		zap.String("defender", msg.Defender.String()),
		zap.Int("terrain_effects", len(msg.Battlefield.TerrainEffects)),
	)
	ctx.Respond(&messages.BHCreateBattle{BattleID: id})
}

func (m *ManagerActor) list(ctx actor.Context, msg *messages.HBListReports) {
	if m.deps.Repo == nil {
		ctx.Respond(&messages.BHListReports{})
		return
	}
	reports, err := m.deps.Repo.List(context.Background(), msg.Limit)
	if err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	ctx.Respond(&messages.BHListReports{Reports: reports})
}

// archived 战斗 actor 已回收时，只读请求查战报，写请求一律视为已结束。
func (m *ManagerActor) archived(ctx actor.Context, msg messages.BattleMessage) {
	if m.deps.Repo == nil {
		ctx.Respond(messages.Fail(gd.ErrBattleNotFound.WithData("battle_id", msg.BattleID())))
		return
	}
	rep, err := m.deps.Repo.Get(context.Background(), msg.BattleID())
	if err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	if _, ok := msg.(*messages.HBGetBattle); ok {
		ctx.Respond(&messages.BHBattleState{Battle: rep.Battle, Units: rep.Units, Report: rep})
		return
	}
	ctx.Respond(messages.Fail(gd.ErrBattleResolved.WithData("battle_id", msg.BattleID())))
}
