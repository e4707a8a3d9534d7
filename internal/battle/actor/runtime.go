package actor

import (
	"DotWars/internal/battle/actors"
	"DotWars/internal/battle/entity"
	"DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
	"DotWars/internal/shared/actor/ask"
	"DotWars/internal/shared/actor/messages"
	"context"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

// Runtime 对外暴露战斗 actor 的同步调用。
type Runtime struct {
	system     *protoactor.ActorSystem
	ownsSystem bool
	root       *protoactor.RootContext
	manager    *protoactor.PID
	timeout    time.Duration
}

// NewRuntime system 可以和 world runtime 共用；为空时自建。
func NewRuntime(system *protoactor.ActorSystem, deps actors.Deps, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = ask.DefaultTimeout
	}
	owns := false
	if system == nil {
		system = protoactor.NewActorSystem()
		owns = true
	}
	manager := system.Root.Spawn(protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(deps)
	}))
	return &Runtime{
		system:     system,
		ownsSystem: owns,
		root:       system.Root,
		manager:    manager,
		timeout:    askTimeout,
	}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		// 子 actor 退出前会补写未归档的战报
		_ = r.root.StopFuture(r.manager).Wait()
	}
	if r.ownsSystem && r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) CreateBattle(ctx context.Context, attacker, defender gd.FactionID, field domain.Battlefield) (string, error) {
	resp, err := call[messages.BHCreateBattle](ctx, r, &messages.HBCreateBattle{
		Attacker:    attacker,
		Defender:    defender,
		Battlefield: field,
	})
	if err != nil {
		return "", err
	}
	return resp.BattleID, nil
}

// Deploy 部队交给战斗后由战斗独占，调用方不应再修改它。
func (r *Runtime) Deploy(ctx context.Context, battleID string, u domain.Unit, stats domain.CombatStats, pos gd.Position) (domain.Side, error) {
	resp, err := call[messages.BHDeploy](ctx, r, &messages.HBDeploy{
		BattleBaseMessage: messages.BattleBaseMessage{BattleId: battleID},
		Unit:              u,
		Stats:             stats,
		Position:          pos,
	})
	if err != nil {
		return 0, err
	}
	return resp.Side, nil
}

func (r *Runtime) BeginCombat(ctx context.Context, battleID string) (*messages.BHBattleState, error) {
	return call[messages.BHBattleState](ctx, r, &messages.HBBeginCombat{
		BattleBaseMessage: messages.BattleBaseMessage{BattleId: battleID},
	})
}

func (r *Runtime) RunRound(ctx context.Context, battleID string) (*messages.BHRunRound, error) {
	return call[messages.BHRunRound](ctx, r, &messages.HBRunRound{
		BattleBaseMessage: messages.BattleBaseMessage{BattleId: battleID},
	})
}

// RunToEnd 连续推进直到战斗结束，maxRounds<=0 表示不限。
func (r *Runtime) RunToEnd(ctx context.Context, battleID string, maxRounds int) (*entity.BattleReport, []messages.BHRunRound, error) {
	var rounds []messages.BHRunRound
	for i := 0; maxRounds <= 0 || i < maxRounds; i++ {
		resp, err := r.RunRound(ctx, battleID)
		if err != nil {
			return nil, rounds, err
		}
		rounds = append(rounds, *resp)
		if resp.Report != nil {
			return resp.Report, rounds, nil
		}
	}
	return nil, rounds, nil
}

func (r *Runtime) GetBattle(ctx context.Context, battleID string) (*messages.BHBattleState, error) {
	return call[messages.BHBattleState](ctx, r, &messages.HBGetBattle{
		BattleBaseMessage: messages.BattleBaseMessage{BattleId: battleID},
	})
}

func (r *Runtime) ListReports(ctx context.Context, limit int) ([]*entity.BattleReport, error) {
	resp, err := call[messages.BHListReports](ctx, r, &messages.HBListReports{Limit: limit})
	if err != nil {
		return nil, err
	}
	return resp.Reports, nil
}

func call[Resp any](ctx context.Context, r *Runtime, msg any) (*Resp, error) {
	if r == nil {
		return ask.Request[Resp](nil, nil, msg, 0)
	}
	return ask.Request[Resp](r.root, r.manager, msg, ask.Timeout(ctx, r.timeout))
}
