package actors

import (
	"DotWars/internal/battle/entity"
	"DotWars/internal/battle/entity/domain"
	"DotWars/internal/battle/service"
	"DotWars/internal/shared/actor/messages"
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const archiveTimeout = 5 * time.Second

// BattleActor 独占一场战斗和参战部队，直到战斗结束并归档。
type BattleActor struct {
	deps       Deps
	battle     *domain.Battle
	registry   *service.UnitRegistry
	report     *entity.BattleReport
	archived   bool
	dispatcher *Dispatcher
}

func NewBattleActor(b *domain.Battle, deps Deps) *BattleActor {
	return &BattleActor{
		deps:       deps,
		battle:     b,
		registry:   service.NewUnitRegistry(),
		dispatcher: NewDispatcher(),
	}
}

func (p *BattleActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		return
	case *actor.Stopping:
		// 归档失败的战斗在退出前再试一次
		if p.report != nil && !p.archived {
			p.archive()
		}
		return
	case *actor.ReceiveTimeout:
		ctx.Send(ctx.Parent(), &battleIdle{BattleID: p.battle.ID})
		return
	case messages.BattleMessage:
		p.dispatcher.Dispatch(ctx, p, msg)
		if p.report != nil {
			ctx.SetReceiveTimeout(p.deps.IdleAfterResolve)
		}
	}
}

// conclude 战斗结束：部队移出登记表写进战报，然后归档。
func (p *BattleActor) conclude(last *service.RoundReport) (*entity.BattleReport, error) {
	rep, err := p.deps.Service.Conclude(p.battle, p.registry, last, p.deps.Now())
	if err != nil {
		return nil, err
	}
	p.report = rep
	p.archive()
	p.deps.Logger.Info("battle resolved",
		zap.String("battle_id", rep.BattleID),
		zap.String("winner", rep.WinnerText()),
		zap.String("reason", rep.Reason),
		zap.Uint32("turns", rep.Turns),
	)
	return rep, nil
}

func (p *BattleActor) archive() {
	if p.deps.Repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()
	if err := p.deps.Repo.Save(ctx, p.report); err != nil {
		p.deps.Logger.Error("battle report save failed",
			zap.String("battle_id", p.report.BattleID),
			zap.Error(err),
		)
		return
	}
	p.archived = true
}

// units 当前参战部队；战斗结束后以战报为准。
func (p *BattleActor) units() []entity.UnitOutcome {
	if p.report != nil {
		return p.report.Units
	}
	var out []entity.UnitOutcome
	for _, side := range []domain.Side{domain.SideAttacker, domain.SideDefender} {
		for _, id := range p.battle.Units(side) {
			u, ok := p.registry.Unit(id)
			if !ok {
				continue
			}
			stats, _ := p.registry.Stats(id)
			out = append(out, entity.UnitOutcome{
				Unit:   *u,
				Stats:  stats,
				Side:   side,
				Routed: p.registry.IsRouted(id),
			})
		}
	}
	return out
}
