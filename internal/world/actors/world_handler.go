package actors

import (
	"DotWars/internal/shared/actor/messages"
	"DotWars/internal/world/entity/domain"
	"context"

	gd "DotWars/internal/game/domain"

	"github.com/asynkron/protoactor-go/actor"
)

type WorldHandler struct{}

var WH = &WorldHandler{}

func (h *WorldHandler) HandleAdvanceTurn(ctx actor.Context, p *WorldActor, req *messages.HWAdvanceTurn) {
	rep := p.Service().AdvanceTurn(context.Background(), p.entity)
	ctx.Respond(&messages.WHAdvanceTurn{
		Turn:      rep.Turn,
		Income:    rep.Income,
		Completed: len(rep.Completed),
	})
}

func (h *WorldHandler) HandleFactionIncome(ctx actor.Context, p *WorldActor, req *messages.HWFactionIncome) {
	f, ok := p.entity.Faction(req.FactionID)
	if !ok {
		ctx.Respond(messages.Fail(gd.ErrFactionNotFound.WithData("faction_id", req.FactionID.String())))
		return
	}
	ctx.Respond(&messages.WHFactionIncome{
		FactionID: f.ID,
		Income:    p.entity.Map().CalculateFactionIncome(f.ID),
		Treasury:  f.Treasury,
	})
}

func (h *WorldHandler) HandleFactionProvinces(ctx actor.Context, p *WorldActor, req *messages.HWFactionProvinces) {
	if _, ok := p.entity.Faction(req.FactionID); !ok {
		ctx.Respond(messages.Fail(gd.ErrFactionNotFound.WithData("faction_id", req.FactionID.String())))
		return
	}
	ps := p.entity.Map().FactionProvinces(req.FactionID)
	out := make([]domain.Province, 0, len(ps))
	for _, v := range ps {
		out = append(out, *v.Clone())
	}
	ctx.Respond(&messages.WHFactionProvinces{Provinces: out})
}

func (h *WorldHandler) HandleListFactions(ctx actor.Context, p *WorldActor, req *messages.HWListFactions) {
	fs := p.entity.Factions()
	out := make([]gd.Faction, 0, len(fs))
	for _, f := range fs {
		out = append(out, *f)
	}
	ctx.Respond(&messages.WHListFactions{Turn: p.entity.Turn(), Factions: out})
}

func (h *WorldHandler) HandleTransferProvince(ctx actor.Context, p *WorldActor, req *messages.HWTransferProvince) {
	if err := p.Service().TransferProvince(p.entity, req.ProvinceID, req.NewOwner); err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	prov, _ := p.entity.Map().GetProvince(req.ProvinceID)
	ctx.Respond(&messages.WHTransferProvince{Province: *prov.Clone()})
}

func (h *WorldHandler) HandleConstruct(ctx actor.Context, p *WorldActor, req *messages.HWConstruct) {
	b, cost, err := p.Service().Construct(p.entity, req.FactionID, req.ProvinceID, req.BuildingType)
	if err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	f, _ := p.entity.Faction(req.FactionID)
	ctx.Respond(&messages.WHConstruct{Building: *b, Cost: cost, Treasury: f.Treasury})
}

func (h *WorldHandler) HandleRecruit(ctx actor.Context, p *WorldActor, req *messages.HWRecruit) {
	u, stats, err := p.Service().Recruit(p.entity, req.FactionID, req.UnitType, req.Size)
	if err != nil {
		ctx.Respond(messages.Fail(err))
		return
	}
	f, _ := p.entity.Faction(req.FactionID)
	ctx.Respond(&messages.WHRecruit{Unit: *u, Stats: stats, Treasury: f.Treasury})
}

func (h *WorldHandler) HandleWorldSnapshot(ctx actor.Context, p *WorldActor, req *messages.HWWorldSnapshot) {
	ctx.Respond(&messages.WHWorldSnapshot{Snapshot: p.entity.Snapshot(0)})
}
