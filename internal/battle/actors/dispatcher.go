package actors

import (
	"DotWars/internal/shared/actor/messages"
	"DotWars/modules/kit/errx"
	"reflect"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]reflect.Value
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{handlers: make(map[reflect.Type]reflect.Value)}
	register(d, BH.HandleDeploy)
	register(d, BH.HandleBeginCombat)
	register(d, BH.HandleRunRound)
	register(d, BH.HandleGetBattle)
	return d
}

func register[Req any](d *Dispatcher, fn func(ctx actor.Context, p *BattleActor, req Req)) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType.Kind() != reflect.Ptr {
		panic("dispatcher req type must be pointer message")
	}
	d.handlers[reqType] = reflect.ValueOf(fn)
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *BattleActor, req messages.BattleMessage) {
	fn, ok := d.handlers[reflect.TypeOf(req)]
	if !ok {
		ctx.Respond(messages.Fail(errx.ErrReqParamERR.WithData("reason", "no handler for "+reflect.TypeOf(req).String())))
		return
	}
	fn.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(p), reflect.ValueOf(req)})
}
