package http

import (
	btdomain "DotWars/internal/battle/entity/domain"
	gd "DotWars/internal/game/domain"
	"DotWars/internal/gate/app/model"
	"DotWars/internal/gate/interfaces/handler"
	"DotWars/internal/gate/interfaces/handler/http/dto"
	"DotWars/internal/shared/transport"
	"DotWars/internal/world/entity/domain"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultMaxRounds = 1000

type HttpHandler struct {
	gate *handler.Gate
}

func NewHttpHandler(g *handler.Gate) *HttpHandler {
	return &HttpHandler{gate: g}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	world := group.Group("/world")
	world.GET("/factions", h.ListFactions)
	world.GET("/factions/:id/income", h.FactionIncome)
	world.GET("/factions/:id/provinces", h.FactionProvinces)
	world.POST("/factions/:id/recruits", h.Recruit)
	world.POST("/turns", h.AdvanceTurn)
	world.POST("/provinces/:id/owner", h.TransferProvince)
	world.POST("/provinces/:id/buildings", h.Construct)
	world.GET("/snapshot", h.WorldSnapshot)

	battles := group.Group("/battles")
	battles.GET("", h.ListReports)
	battles.POST("", h.CreateBattle)
	battles.GET("/:id", h.GetBattle)
	battles.POST("/:id/deploy", h.Deploy)
	battles.POST("/:id/begin", h.BeginCombat)
	battles.POST("/:id/rounds", h.RunRounds)
	battles.GET("/:id/watchers", h.Watchers)
}

// ============ World ============

func (h *HttpHandler) ListFactions(c *gin.Context) {
	resp, err := h.gate.World.ListFactions(c.Request.Context())
	if err != nil {
		h.error(c, "world list factions", err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) FactionIncome(c *gin.Context) {
	id, ok := h.factionParam(c)
	if !ok {
		return
	}
	resp, err := h.gate.World.FactionIncome(c.Request.Context(), id)
	if err != nil {
		h.error(c, "world faction income", err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) FactionProvinces(c *gin.Context) {
	id, ok := h.factionParam(c)
	if !ok {
		return
	}
	resp, err := h.gate.World.FactionProvinces(c.Request.Context(), id)
	if err != nil {
		h.error(c, "world faction provinces", err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) Recruit(c *gin.Context) {
	id, ok := h.factionParam(c)
	if !ok {
		return
	}
	var req model.RecruitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.ParamError, "参数有误")
		return
	}
	ut, err := btdomain.ParseUnitType(req.UnitType)
	if err != nil {
		h.fail(c, transport.ParamError, "兵种有误")
		return
	}
	resp, err := h.gate.World.Recruit(c.Request.Context(), id, ut, req.Size)
	if err != nil {
		h.error(c, "world recruit", err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) AdvanceTurn(c *gin.Context) {
	resp, err := h.gate.World.AdvanceTurn(c.Request.Context())
	if err != nil {
		h.error(c, "world advance turn", err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) TransferProvince(c *gin.Context) {
	provinceID, err := gd.ParseProvinceID(c.Param("id"))
	if err != nil {
		h.fail(c, transport.ParamError, "省份 id 有误")
		return
	}
	var req model.TransferProvinceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.ParamError, "参数有误")
		return
	}
	var owner *gd.FactionID
	if req.Owner != nil && *req.Owner != "" {
		f, err := gd.ParseFactionID(*req.Owner)
		if err != nil {
			h.fail(c, transport.ParamError, "势力 id 有误")
			return
		}
		owner = &f
	}
	resp, err := h.gate.World.TransferProvince(c.Request.Context(), provinceID, owner)
	if err != nil {
		h.error(c, "world transfer province", err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) Construct(c *gin.Context) {
	provinceID, err := gd.ParseProvinceID(c.Param("id"))
	if err != nil {
		h.fail(c, transport.ParamError, "省份 id 有误")
		return
	}
	var req model.ConstructReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.ParamError, "参数有误")
		return
	}
	factionID, err := gd.ParseFactionID(req.Faction)
	if err != nil {
		h.fail(c, transport.ParamError, "势力 id 有误")
		return
	}
	bt, err := domain.ParseBuildingType(req.Building)
	if err != nil {
		h.fail(c, transport.ParamError, "建筑类型有误")
		return
	}
	resp, err := h.gate.World.Construct(c.Request.Context(), factionID, provinceID, bt)
	if err != nil {
		h.error(c, "world construct", err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) WorldSnapshot(c *gin.Context) {
	resp, err := h.gate.World.WorldSnapshot(c.Request.Context())
	if err != nil {
		h.error(c, "world snapshot", err)
		return
	}
	h.ok(c, resp)
}

// ============ Battle ============

func (h *HttpHandler) CreateBattle(c *gin.Context) {
	var req model.CreateBattleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.ParamError, "参数有误")
		return
	}
	attacker, err1 := gd.ParseFactionID(req.Attacker)
	defender, err2 := gd.ParseFactionID(req.Defender)
	if err1 != nil || err2 != nil {
		h.fail(c, transport.ParamError, "势力 id 有误")
		return
	}
	id, err := h.gate.Battle.CreateBattle(c.Request.Context(), attacker, defender, req.Battlefield)
	if err != nil {
		h.error(c, "battle create", err)
		return
	}
	h.ok(c, gin.H{"battle_id": id})
}

func (h *HttpHandler) Deploy(c *gin.Context) {
	var req model.DeployReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.ParamError, "参数有误")
		return
	}
	stats := btdomain.NewCombatStats(req.Unit.UnitType)
	if req.Stats != nil {
		stats = *req.Stats
	}
	side, err := h.gate.Battle.Deploy(c.Request.Context(), c.Param("id"), req.Unit, stats, req.Position)
	if err != nil {
		h.error(c, "battle deploy", err)
		return
	}
	h.ok(c, gin.H{"side": side})
}

func (h *HttpHandler) BeginCombat(c *gin.Context) {
	resp, err := h.gate.Battle.BeginCombat(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.error(c, "battle begin", err)
		return
	}
	h.ok(c, resp)
}

// RunRounds 默认推进一轮；until_end=true 时一直推进到结束或 max_rounds。
func (h *HttpHandler) RunRounds(c *gin.Context) {
	var req model.RunRoundsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.fail(c, transport.ParamError, "参数有误")
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	if !req.UntilEnd {
		resp, err := h.gate.RunRound(ctx, id)
		if err != nil {
			h.error(c, "battle run round", err)
			return
		}
		h.ok(c, resp)
		return
	}

	maxRounds := req.MaxRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}
	report, rounds, err := h.gate.RunToEnd(ctx, id, maxRounds)
	if err != nil {
		h.error(c, "battle run to end", err)
		return
	}
	h.ok(c, gin.H{"rounds": len(rounds), "report": report})
}

func (h *HttpHandler) GetBattle(c *gin.Context) {
	resp, err := h.gate.Battle.GetBattle(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.error(c, "battle get", err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) ListReports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	resp, err := h.gate.Battle.ListReports(c.Request.Context(), limit)
	if err != nil {
		h.error(c, "battle list reports", err)
		return
	}
	h.ok(c, resp)
}

// Watchers 当前 websocket 观战连接数。
func (h *HttpHandler) Watchers(c *gin.Context) {
	h.ok(c, gin.H{"battle_id": c.Param("id"), "watchers": h.gate.Watchers.Watchers(c.Param("id"))})
}

// ============ helpers ============

func (h *HttpHandler) factionParam(c *gin.Context) (gd.FactionID, bool) {
	id, err := gd.ParseFactionID(c.Param("id"))
	if err != nil {
		h.fail(c, transport.ParamError, "势力 id 有误")
		return gd.FactionID{}, false
	}
	return id, true
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *HttpHandler) error(c *gin.Context, action string, err error) {
	code, msg := handler.HandleError(c.Request.Context(), h.gate.Log, action, err)
	h.fail(c, code, msg)
}
