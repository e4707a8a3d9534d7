package interfaces

import (
	"DotWars/internal/gate/app"
	"DotWars/internal/gate/interfaces/handler"
	"DotWars/internal/gate/interfaces/handler/http"
	gatews "DotWars/internal/gate/interfaces/handler/ws"
	transporthttp "DotWars/internal/shared/transport/http"
	"DotWars/internal/shared/transport/ws"
	"DotWars/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

// Module 管理接口模块：同一个 Gate 同时挂 HTTP 路由和 websocket 路由。
type Module struct {
	gate        *handler.Gate
	wsHandler   *gatews.WsHandler
	httpHandler *http.HttpHandler
}

func New(world app.WorldClient, battle app.BattleClient, log logx.Logger) *Module {
	gate := handler.NewGate(world, battle, log)
	return &Module{
		gate:        gate,
		wsHandler:   gatews.NewWsHandler(gate),
		httpHandler: http.NewHttpHandler(gate),
	}
}

func (m *Module) Gate() *handler.Gate {
	return m.gate
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
