package actors

import (
	"DotWars/internal/shared/actor/messages"
	"context"

	gd "DotWars/internal/game/domain"

	"github.com/asynkron/protoactor-go/actor"
)

type BattleHandler struct{}

var BH = &BattleHandler{}

func (h *BattleHandler) HandleDeploy(ctx actor.Context, p *BattleActor, req *messages.HBDeploy) {
	u := req.Unit
	if u.ID.IsZero() {
		u.ID = gd.NewUnitID()
	}
	side, err := p.deps.Service.Deploy(p.battle, p.registry, &u, req.Stats, req.Position)
	if err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	ctx.Respond(&messages.BHDeploy{Side: side})
}

func (h *BattleHandler) HandleBeginCombat(ctx actor.Context, p *BattleActor, req *messages.HBBeginCombat) {
	if p.battle.IsResolved() {
		ctx.Respond(messages.Fail(gd.ErrBattleResolved.WithData("battle_id", p.battle.ID)))
		return
	}
	if err := p.battle.BeginCombat(); err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	ctx.Respond(&messages.BHBattleState{Battle: *p.battle, Units: p.units()})
}

func (h *BattleHandler) HandleRunRound(ctx actor.Context, p *BattleActor, req *messages.HBRunRound) {
	round, err := p.deps.Service.RunRound(context.Background(), p.battle, p.registry)
	if err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	resp := &messages.BHRunRound{Round: *round}
	if round.Resolved {
		rep, err := p.conclude(round)
		if err != nil {
			ctx.Respond(messages.Fail(err))
			return
		}
		resp.Report = rep
	}
	ctx.Respond(resp)
}

func (h *BattleHandler) HandleGetBattle(ctx actor.Context, p *BattleActor, req *messages.HBGetBattle) {
	ctx.Respond(&messages.BHBattleState{Battle: *p.battle, Units: p.units(), Report: p.report})
}
