package actors

import (
	"DotWars/internal/shared/actor/messages"
	"DotWars/modules/kit/errx"
	"reflect"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, WH.HandleAdvanceTurn)
	register(d, WH.HandleFactionIncome)
	register(d, WH.HandleFactionProvinces)
	register(d, WH.HandleListFactions)
	register(d, WH.HandleTransferProvince)
	register(d, WH.HandleConstruct)
	register(d, WH.HandleRecruit)
	register(d, WH.HandleWorldSnapshot)
}

// register 按请求的具体类型注册处理函数，请求一律是指针消息。
func register[Req any](
	d *Dispatcher,
	fn func(ctx actor.Context, p *WorldActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil || reqType.Kind() != reflect.Ptr {
		panic("dispatcher req type must be pointer message")
	}

	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *WorldActor, req messages.WorldMessage) {
	if req == nil {
		ctx.Respond(messages.Fail(errx.ErrReqParamERR.WithData("reason", "nil req")))
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(messages.Fail(errx.ErrReqParamERR.WithData("reason", "no handler for "+bodyType.String())))
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}
