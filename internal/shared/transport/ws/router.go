package ws

import (
	"DotWars/internal/shared/transport"
	"DotWars/modules/kit/logx"
	"context"
	"strings"
)

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

type Group struct {
	prefix   string
	handlers map[string]HandlerFunc
}

func (g *Group) Handle(name string, h HandlerFunc) {
	g.handlers[name] = h
}

// Registrar 由各模块实现，把自己的路由挂到 Router 上。
type Registrar interface {
	WsRegister(r *Router)
}

type Router struct {
	groups map[string]*Group
	log    logx.Logger
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.Nop()
	}
	return &Router{
		groups: make(map[string]*Group),
		log:    l,
	}
}

func (r *Router) Group(prefix string) *Group {
	group := r.groups[prefix]
	if group == nil {
		group = &Group{
			prefix:   prefix,
			handlers: make(map[string]HandlerFunc),
		}
		r.groups[prefix] = group
	}
	return group
}

// Dispatch 按 "组.路由" 分发，例如 battle.round。
func (r *Router) Dispatch(parent context.Context, req *WsMsgReq, resp *WsMsgResp) {
	ctx := r.prepareDispatchContext(parent, req, resp)
	defer r.writeAccessLog(ctx, resp)

	if req == nil || req.Body == nil || resp == nil || resp.Body == nil {
		r.setErrorResponse(resp, transport.ParamError, "参数有误")
		return
	}

	handlerFunc := r.findHandler(req.Body.Name, resp)
	if handlerFunc == nil {
		return
	}
	handlerFunc(ctx, req, resp)
}

func (r *Router) prepareDispatchContext(parent context.Context, req *WsMsgReq, resp *WsMsgResp) context.Context {
	action := "WS unknown"
	if req != nil && req.Body != nil {
		action = "WS " + req.Body.Name
	}
	ctx := transport.NewContextWithParent(parent, action)
	if req != nil {
		recordScope(ctx, req)
	}

	if resp != nil && resp.Body != nil {
		// 先置系统错误，handler 漏设时不会变成成功
		resp.Body.Code = transport.SystemError
		resp.Body.Msg = nil
	}
	return ctx
}

func (r *Router) findHandler(route string, resp *WsMsgResp) HandlerFunc {
	prefix, name, ok := parseRouteName(route)
	if !ok {
		r.setErrorResponse(resp, transport.UnknownAction, "路由参数有误")
		return nil
	}
	group := r.groups[prefix]
	if group == nil {
		r.setErrorResponse(resp, transport.UnknownAction, "路由组不存在")
		return nil
	}
	h := group.handlers[name]
	if h == nil {
		r.setErrorResponse(resp, transport.UnknownAction, "路由处理器不存在")
		return nil
	}
	return h
}

// 消息体字段 → 访问日志作用域字段
var scopeByField = map[string]string{
	"world_id":  transport.ScopeWorldID,
	"battle_id": transport.ScopeBattleID,
	"faction":   transport.ScopeFactionID,
	"province":  transport.ScopeProvinceID,
}

func recordScope(ctx context.Context, req *WsMsgReq) {
	if req.Conn != nil {
		if subject, ok := req.Conn.GetProperty(ConnKeySubject).(string); ok {
			transport.SetScope(ctx, transport.ScopeSubject, subject)
		}
	}
	if req.Body == nil {
		return
	}
	m, ok := req.Body.Msg.(map[string]any)
	if !ok {
		return
	}
	for field, key := range scopeByField {
		if v, ok := m[field].(string); ok {
			transport.SetScope(ctx, key, v)
		}
	}
}

func parseRouteName(name string) (string, string, bool) {
	prefix, handler, ok := strings.Cut(name, ".")
	if !ok || prefix == "" || handler == "" || strings.Contains(handler, ".") {
		return "", "", false
	}
	return prefix, handler, true
}

func (r *Router) setErrorResponse(resp *WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	resp.Body.Msg = msg
}

func (r *Router) writeAccessLog(ctx context.Context, resp *WsMsgResp) {
	bizCode := transport.SystemError
	if resp != nil && resp.Body != nil {
		bizCode = resp.Body.Code
	}
	transport.SetBizCode(ctx, transport.BizCode(bizCode))
	transport.WriteAccessLog(ctx, r.log)
}
