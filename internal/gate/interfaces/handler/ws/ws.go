package ws

import (
	btdomain "DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
	"DotWars/internal/gate/app/model"
	"DotWars/internal/gate/interfaces/handler"
	"DotWars/internal/gate/interfaces/handler/ws/dto"
	"DotWars/internal/shared/transport"
	"DotWars/internal/shared/transport/ws"
	"DotWars/internal/world/entity/domain"
	"context"
)

const defaultMaxRounds = 1000

type WsHandler struct {
	gate *handler.Gate
}

func NewWsHandler(g *handler.Gate) *WsHandler {
	return &WsHandler{gate: g}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	world := r.Group("world")
	world.Handle("factions", h.listFactions)
	world.Handle("income", h.factionIncome)
	world.Handle("provinces", h.factionProvinces)
	world.Handle("advanceTurn", h.advanceTurn)
	world.Handle("transfer", h.transferProvince)
	world.Handle("construct", h.construct)
	world.Handle("recruit", h.recruit)
	world.Handle("snapshot", h.worldSnapshot)

	battle := r.Group("battle")
	battle.Handle("create", h.createBattle)
	battle.Handle("deploy", h.deploy)
	battle.Handle("begin", h.beginCombat)
	battle.Handle("round", h.runRounds)
	battle.Handle("get", h.getBattle)
	battle.Handle("list", h.listReports)
	battle.Handle("watch", h.watch)
	battle.Handle("unwatch", h.unwatch)
}

// ============ World ============

func (h *WsHandler) listFactions(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	out, err := h.gate.World.ListFactions(ctx)
	h.reply(ctx, resp, "ws world list factions", out, err)
}

func (h *WsHandler) factionIncome(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	id, ok := h.bindFaction(req, resp)
	if !ok {
		return
	}
	out, err := h.gate.World.FactionIncome(ctx, id)
	h.reply(ctx, resp, "ws world faction income", out, err)
}

func (h *WsHandler) factionProvinces(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	id, ok := h.bindFaction(req, resp)
	if !ok {
		return
	}
	out, err := h.gate.World.FactionProvinces(ctx, id)
	h.reply(ctx, resp, "ws world faction provinces", out, err)
}

func (h *WsHandler) advanceTurn(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	out, err := h.gate.World.AdvanceTurn(ctx)
	h.reply(ctx, resp, "ws world advance turn", out, err)
}

func (h *WsHandler) transferProvince(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	var in dto.TransferProvinceReq
	if err := ws.BindJSON(req, &in); err != nil {
		h.fail(resp, transport.ParamError, "参数有误")
		return
	}
	provinceID, err := gd.ParseProvinceID(in.Province)
	if err != nil {
		h.fail(resp, transport.ParamError, "省份 id 有误")
		return
	}
	var owner *gd.FactionID
	if in.Owner != nil && *in.Owner != "" {
		f, err := gd.ParseFactionID(*in.Owner)
		if err != nil {
			h.fail(resp, transport.ParamError, "势力 id 有误")
			return
		}
		owner = &f
	}
	out, err := h.gate.World.TransferProvince(ctx, provinceID, owner)
	h.reply(ctx, resp, "ws world transfer province", out, err)
}

func (h *WsHandler) construct(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	var in dto.ConstructReq
	if err := ws.BindJSON(req, &in); err != nil {
		h.fail(resp, transport.ParamError, "参数有误")
		return
	}
	provinceID, err := gd.ParseProvinceID(in.Province)
	if err != nil {
		h.fail(resp, transport.ParamError, "省份 id 有误")
		return
	}
	factionID, err := gd.ParseFactionID(in.Faction)
	if err != nil {
		h.fail(resp, transport.ParamError, "势力 id 有误")
		return
	}
	bt, err := domain.ParseBuildingType(in.Building)
	if err != nil {
		h.fail(resp, transport.ParamError, "建筑类型有误")
		return
	}
	out, err := h.gate.World.Construct(ctx, factionID, provinceID, bt)
	h.reply(ctx, resp, "ws world construct", out, err)
}

func (h *WsHandler) recruit(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	var in dto.RecruitReq
	if err := ws.BindJSON(req, &in); err != nil {
		h.fail(resp, transport.ParamError, "参数有误")
		return
	}
	factionID, err := gd.ParseFactionID(in.Faction)
	if err != nil {
		h.fail(resp, transport.ParamError, "势力 id 有误")
		return
	}
	ut, err := btdomain.ParseUnitType(in.UnitType)
	if err != nil || in.Size == 0 {
		h.fail(resp, transport.ParamError, "兵种有误")
		return
	}
	out, err := h.gate.World.Recruit(ctx, factionID, ut, in.Size)
	h.reply(ctx, resp, "ws world recruit", out, err)
}

func (h *WsHandler) worldSnapshot(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	out, err := h.gate.World.WorldSnapshot(ctx)
	h.reply(ctx, resp, "ws world snapshot", out, err)
}

// ============ Battle ============

func (h *WsHandler) createBattle(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	var in model.CreateBattleReq
	if err := ws.BindJSON(req, &in); err != nil {
		h.fail(resp, transport.ParamError, "参数有误")
		return
	}
	attacker, err1 := gd.ParseFactionID(in.Attacker)
	defender, err2 := gd.ParseFactionID(in.Defender)
	if err1 != nil || err2 != nil {
		h.fail(resp, transport.ParamError, "势力 id 有误")
		return
	}
	id, err := h.gate.Battle.CreateBattle(ctx, attacker, defender, in.Battlefield)
	h.reply(ctx, resp, "ws battle create", map[string]string{"battle_id": id}, err)
}

func (h *WsHandler) deploy(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	var in dto.DeployReq
	if err := ws.BindJSON(req, &in); err != nil || in.BattleID == "" {
		h.fail(resp, transport.ParamError, "参数有误")
		return
	}
	stats := btdomain.NewCombatStats(in.Unit.UnitType)
	if in.Stats != nil {
		stats = *in.Stats
	}
	side, err := h.gate.Battle.Deploy(ctx, in.BattleID, in.Unit, stats, in.Position)
	h.reply(ctx, resp, "ws battle deploy", map[string]any{"side": side}, err)
}

func (h *WsHandler) beginCombat(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	id, ok := h.bindBattle(req, resp)
	if !ok {
		return
	}
	out, err := h.gate.Battle.BeginCombat(ctx, id)
	h.reply(ctx, resp, "ws battle begin", out, err)
}

// runRounds 默认推进一轮；until_end=true 时推进到结束或 max_rounds。
func (h *WsHandler) runRounds(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	var in dto.RunRoundsReq
	if err := ws.BindJSON(req, &in); err != nil || in.BattleID == "" {
		h.fail(resp, transport.ParamError, "参数有误")
		return
	}
	if !in.UntilEnd {
		out, err := h.gate.RunRound(ctx, in.BattleID)
		h.reply(ctx, resp, "ws battle run round", out, err)
		return
	}
	maxRounds := in.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}
	report, rounds, err := h.gate.RunToEnd(ctx, in.BattleID, maxRounds)
	h.reply(ctx, resp, "ws battle run to end", map[string]any{"rounds": len(rounds), "report": report}, err)
}

func (h *WsHandler) getBattle(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	id, ok := h.bindBattle(req, resp)
	if !ok {
		return
	}
	out, err := h.gate.Battle.GetBattle(ctx, id)
	h.reply(ctx, resp, "ws battle get", out, err)
}

func (h *WsHandler) listReports(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	var in dto.ListReportsReq
	if req.Body.Msg != nil {
		if err := ws.BindJSON(req, &in); err != nil {
			h.fail(resp, transport.ParamError, "参数有误")
			return
		}
	}
	out, err := h.gate.Battle.ListReports(ctx, in.Limit)
	h.reply(ctx, resp, "ws battle list reports", out, err)
}

// watch 订阅战斗的逐轮推送；战斗必须存在（进行中或已归档）。
func (h *WsHandler) watch(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	id, ok := h.bindBattle(req, resp)
	if !ok {
		return
	}
	state, err := h.gate.Battle.GetBattle(ctx, id)
	if err != nil {
		h.error(ctx, resp, "ws battle watch", err)
		return
	}
	h.gate.Watchers.Watch(id, req.Conn)
	h.ok(resp, state)
}

func (h *WsHandler) unwatch(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	id, ok := h.bindBattle(req, resp)
	if !ok {
		return
	}
	h.gate.Watchers.Unwatch(id, req.Conn)
	h.ok(resp, nil)
}

// ============ helpers ============

func (h *WsHandler) bindFaction(req *ws.WsMsgReq, resp *ws.WsMsgResp) (gd.FactionID, bool) {
	var in dto.FactionReq
	if err := ws.BindJSON(req, &in); err != nil {
		h.fail(resp, transport.ParamError, "参数有误")
		return gd.FactionID{}, false
	}
	id, err := gd.ParseFactionID(in.Faction)
	if err != nil {
		h.fail(resp, transport.ParamError, "势力 id 有误")
		return gd.FactionID{}, false
	}
	return id, true
}

func (h *WsHandler) bindBattle(req *ws.WsMsgReq, resp *ws.WsMsgResp) (string, bool) {
	var in dto.BattleReq
	if err := ws.BindJSON(req, &in); err != nil || in.BattleID == "" {
		h.fail(resp, transport.ParamError, "参数有误")
		return "", false
	}
	return in.BattleID, true
}

func (h *WsHandler) reply(ctx context.Context, resp *ws.WsMsgResp, action string, data any, err error) {
	if err != nil {
		h.error(ctx, resp, action, err)
		return
	}
	h.ok(resp, data)
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, action string, err error) {
	code, msg := handler.HandleError(ctx, h.gate.Log, action, err)
	h.fail(resp, code, msg)
}
