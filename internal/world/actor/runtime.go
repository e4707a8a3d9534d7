package actor

import (
	btdomain "DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
	"DotWars/internal/shared/actor/ask"
	"DotWars/internal/shared/actor/messages"
	"DotWars/internal/world/actors"
	"DotWars/internal/world/entity"
	"DotWars/internal/world/entity/domain"
	"context"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

// Runtime 对外暴露 world actor 的同步调用。
type Runtime struct {
	system     *protoactor.ActorSystem
	ownsSystem bool
	root       *protoactor.RootContext
	manager    *protoactor.PID
	worldID    int
	timeout    time.Duration
}

// NewRuntime system 为空时自建一个 ActorSystem，Shutdown 时一并关闭。
func NewRuntime(system *protoactor.ActorSystem, deps actors.Deps, worldID int, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = ask.DefaultTimeout
	}
	owns := false
	if system == nil {
		system = protoactor.NewActorSystem()
		owns = true
	}

	root := system.Root
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(deps)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:     system,
		ownsSystem: owns,
		root:       root,
		manager:    manager,
		worldID:    worldID,
		timeout:    askTimeout,
	}
}

func (r *Runtime) WorldID() int {
	return r.worldID
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		// 等 world actor 把最后一份快照写完
		_ = r.root.StopFuture(r.manager).Wait()
	}
	if r.ownsSystem && r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) AdvanceTurn(ctx context.Context) (*messages.WHAdvanceTurn, error) {
	return call[messages.WHAdvanceTurn](ctx, r, &messages.HWAdvanceTurn{WorldBaseMessage: r.base()})
}

func (r *Runtime) FactionIncome(ctx context.Context, factionID gd.FactionID) (*messages.WHFactionIncome, error) {
	return call[messages.WHFactionIncome](ctx, r, &messages.HWFactionIncome{WorldBaseMessage: r.base(), FactionID: factionID})
}

func (r *Runtime) FactionProvinces(ctx context.Context, factionID gd.FactionID) ([]domain.Province, error) {
	resp, err := call[messages.WHFactionProvinces](ctx, r, &messages.HWFactionProvinces{WorldBaseMessage: r.base(), FactionID: factionID})
	if err != nil {
		return nil, err
	}
	return resp.Provinces, nil
}

func (r *Runtime) ListFactions(ctx context.Context) (*messages.WHListFactions, error) {
	return call[messages.WHListFactions](ctx, r, &messages.HWListFactions{WorldBaseMessage: r.base()})
}

func (r *Runtime) TransferProvince(ctx context.Context, provinceID gd.ProvinceID, newOwner *gd.FactionID) (*domain.Province, error) {
	resp, err := call[messages.WHTransferProvince](ctx, r, &messages.HWTransferProvince{
		WorldBaseMessage: r.base(),
		ProvinceID:       provinceID,
		NewOwner:         newOwner,
	})
	if err != nil {
		return nil, err
	}
	return &resp.Province, nil
}

func (r *Runtime) Construct(ctx context.Context, factionID gd.FactionID, provinceID gd.ProvinceID, bt domain.BuildingType) (*messages.WHConstruct, error) {
	return call[messages.WHConstruct](ctx, r, &messages.HWConstruct{
		WorldBaseMessage: r.base(),
		FactionID:        factionID,
		ProvinceID:       provinceID,
		BuildingType:     bt,
	})
}

func (r *Runtime) Recruit(ctx context.Context, factionID gd.FactionID, ut btdomain.UnitType, size uint32) (*messages.WHRecruit, error) {
	return call[messages.WHRecruit](ctx, r, &messages.HWRecruit{
		WorldBaseMessage: r.base(),
		FactionID:        factionID,
		UnitType:         ut,
		Size:             size,
	})
}

func (r *Runtime) WorldSnapshot(ctx context.Context) (*entity.WorldPersistSnapshot, error) {
	resp, err := call[messages.WHWorldSnapshot](ctx, r, &messages.HWWorldSnapshot{WorldBaseMessage: r.base()})
	if err != nil {
		return nil, err
	}
	return resp.Snapshot, nil
}

func (r *Runtime) base() messages.WorldBaseMessage {
	if r == nil {
		return messages.WorldBaseMessage{}
	}
	return messages.WorldBaseMessage{WorldId: r.worldID}
}

func call[Resp any](ctx context.Context, r *Runtime, msg any) (*Resp, error) {
	if r == nil {
		return ask.Request[Resp](nil, nil, msg, 0)
	}
	return ask.Request[Resp](r.root, r.manager, msg, ask.Timeout(ctx, r.timeout))
}
