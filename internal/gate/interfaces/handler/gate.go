package handler

import (
	"DotWars/internal/battle/entity"
	"DotWars/internal/gate/app"
	"DotWars/internal/shared/actor/messages"
	"DotWars/internal/shared/session"
	"DotWars/modules/kit/logx"
	"context"
)

// 观战推送的消息名
const (
	PushBattleRound    = "battle.round"
	PushBattleResolved = "battle.resolved"
)

// Gate 管理接口持有的上游：world 和 battle 两个 actor runtime，以及观战订阅表。
type Gate struct {
	World    app.WorldClient
	Battle   app.BattleClient
	Watchers session.Hub
	Log      logx.Logger
}

func NewGate(world app.WorldClient, battle app.BattleClient, log logx.Logger) *Gate {
	if log == nil {
		log = logx.Nop()
	}
	return &Gate{World: world, Battle: battle, Watchers: session.NewWatchHub(), Log: log}
}

// RunRound 推进一轮，并推给观战连接。HTTP 和 websocket 都走这里。
func (g *Gate) RunRound(ctx context.Context, battleID string) (*messages.BHRunRound, error) {
	resp, err := g.Battle.RunRound(ctx, battleID)
	if err != nil {
		return nil, err
	}
	g.publish(battleID, resp)
	return resp, nil
}

func (g *Gate) RunToEnd(ctx context.Context, battleID string, maxRounds int) (*entity.BattleReport, []messages.BHRunRound, error) {
	report, rounds, err := g.Battle.RunToEnd(ctx, battleID, maxRounds)
	for i := range rounds {
		g.publish(battleID, &rounds[i])
	}
	return report, rounds, err
}

func (g *Gate) publish(battleID string, r *messages.BHRunRound) {
	if g.Watchers == nil || r == nil {
		return
	}
	g.Watchers.Publish(battleID, PushBattleRound, r.Round)
	if r.Report != nil {
		g.Watchers.Publish(battleID, PushBattleResolved, r.Report)
	}
}
