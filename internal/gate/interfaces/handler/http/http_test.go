package http

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	battleactor "DotWars/internal/battle/actor"
	battleactors "DotWars/internal/battle/actors"
	battlemem "DotWars/internal/battle/infra/persistence/memory"
	"DotWars/internal/battle/service"
	gd "DotWars/internal/game/domain"
	"DotWars/internal/gate/interfaces/handler"
	"DotWars/internal/shared/actor/messages"
	"DotWars/internal/shared/transport"
	"DotWars/internal/shared/utils"
	worldactor "DotWars/internal/world/actor"
	worldactors "DotWars/internal/world/actors"
	"DotWars/internal/world/entity"
	"DotWars/internal/world/entity/domain"
	worldmem "DotWars/internal/world/infra/persistence/memory"
	worldservice "DotWars/internal/world/service"

	"github.com/gin-gonic/gin"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := worldservice.NewWorldService()
	gen := worldservice.NewWorldGenerator(nil)
	world := worldactor.NewRuntime(nil, worldactors.Deps{
		Repo:    worldmem.NewWorldRepository(),
		Service: svc,
		Bootstrap: func(id entity.WorldID) (*entity.World, error) {
			return svc.GenerateWorld(id, gen, worldservice.WorldSpec{
				Seed: 1, Width: 3, Height: 3, Provinces: 6, Factions: []string{"Red", "Blue"},
			}), nil
		},
		FlushEvery: time.Hour,
	}, 1, time.Second)
	t.Cleanup(world.Shutdown)

	ids, _ := utils.NewIDGenerator(1)
	stop, _ := service.CompileStopPolicy("Turn >= 30")
	battle := battleactor.NewRuntime(nil, battleactors.Deps{
		Repo:    battlemem.NewReportRepository(),
		Service: service.NewBattleService(stop, nil),
		IDs:     ids,
	}, time.Second)
	t.Cleanup(battle.Shutdown)

	engine := gin.New()
	NewHttpHandler(handler.NewGate(world, battle, nil)).RegisterRoutes(engine.Group("/api"))
	return engine
}

func do(t *testing.T, engine *gin.Engine, method, path string, body any) envelope {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("%s %s status=%d", method, path, w.Code)
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return env
}

func factions(t *testing.T, engine *gin.Engine) []gd.Faction {
	t.Helper()
	env := do(t, engine, nethttp.MethodGet, "/api/world/factions", nil)
	if env.Code != transport.OK {
		t.Fatalf("env=%+v", env)
	}
	var resp messages.WHListFactions
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Factions
}

func TestWorldRoutes_查询建造和回合(t *testing.T) {
	engine := newTestEngine(t)
	fs := factions(t, engine)
	if len(fs) != 2 {
		t.Fatalf("factions=%d", len(fs))
	}
	red, blue := fs[0], fs[1]

	env := do(t, engine, nethttp.MethodGet, "/api/world/factions/"+red.ID.String()+"/provinces", nil)
	var provinces []domain.Province
	if err := json.Unmarshal(env.Data, &provinces); err != nil || len(provinces) != 1 {
		t.Fatalf("provinces=%v err=%v", provinces, err)
	}
	capital := provinces[0].ID.String()

	env = do(t, engine, nethttp.MethodPost, "/api/world/provinces/"+capital+"/buildings",
		map[string]string{"faction": blue.ID.String(), "building": "Farm"})
	if env.Code != transport.RuleRejected {
		t.Fatalf("非本方省份应被拒绝, env=%+v", env)
	}

	env = do(t, engine, nethttp.MethodPost, "/api/world/provinces/"+capital+"/buildings",
		map[string]string{"faction": red.ID.String(), "building": "Farm"})
	if env.Code != transport.OK {
		t.Fatalf("env=%+v", env)
	}

	env = do(t, engine, nethttp.MethodPost, "/api/world/turns", nil)
	var turn messages.WHAdvanceTurn
	if err := json.Unmarshal(env.Data, &turn); err != nil || turn.Turn != 1 {
		t.Fatalf("turn=%+v err=%v", turn, err)
	}

	env = do(t, engine, nethttp.MethodGet, "/api/world/factions/not-a-uuid/income", nil)
	if env.Code != transport.ParamError {
		t.Fatalf("env=%+v", env)
	}
	env = do(t, engine, nethttp.MethodGet, "/api/world/factions/"+gd.NewFactionID().String()+"/income", nil)
	if env.Code != transport.NotFound {
		t.Fatalf("env=%+v", env)
	}
}

func TestBattleRoutes_招募部署并打到结束(t *testing.T) {
	engine := newTestEngine(t)
	fs := factions(t, engine)
	red, blue := fs[0], fs[1]

	recruit := func(f gd.Faction, ut string, size int) messages.WHRecruit {
		env := do(t, engine, nethttp.MethodPost, "/api/world/factions/"+f.ID.String()+"/recruits",
			map[string]any{"unit_type": ut, "size": size})
		if env.Code != transport.OK {
			t.Fatalf("recruit env=%+v", env)
		}
		var r messages.WHRecruit
		if err := json.Unmarshal(env.Data, &r); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return r
	}
	att := recruit(red, "Cavalry", 100)
	def := recruit(blue, "Infantry", 40)

	env := do(t, engine, nethttp.MethodPost, "/api/battles",
		map[string]any{"attacker": red.ID.String(), "defender": blue.ID.String(),
			"battlefield": map[string]any{"width": 100, "height": 100}})
	if env.Code != transport.OK {
		t.Fatalf("create env=%+v", env)
	}
	var created struct {
		BattleID string `json:"battle_id"`
	}
	_ = json.Unmarshal(env.Data, &created)
	base := "/api/battles/" + created.BattleID

	for _, r := range []messages.WHRecruit{att, def} {
		env = do(t, engine, nethttp.MethodPost, base+"/deploy", map[string]any{"unit": r.Unit, "stats": r.Stats})
		if env.Code != transport.OK {
			t.Fatalf("deploy env=%+v", env)
		}
	}

	env = do(t, engine, nethttp.MethodPost, base+"/rounds", nil)
	if env.Code != transport.RuleRejected {
		t.Fatalf("部署阶段不能开打, env=%+v", env)
	}
	env = do(t, engine, nethttp.MethodPost, base+"/begin", nil)
	if env.Code != transport.OK {
		t.Fatalf("begin env=%+v", env)
	}
	env = do(t, engine, nethttp.MethodPost, base+"/rounds?until_end=true&max_rounds=100", nil)
	if env.Code != transport.OK {
		t.Fatalf("rounds env=%+v", env)
	}
	var ended struct {
		Rounds int             `json:"rounds"`
		Report json.RawMessage `json:"report"`
	}
	if err := json.Unmarshal(env.Data, &ended); err != nil || ended.Rounds == 0 || string(ended.Report) == "null" {
		t.Fatalf("ended=%+v err=%v", ended, err)
	}

	env = do(t, engine, nethttp.MethodGet, base, nil)
	if env.Code != transport.OK {
		t.Fatalf("get env=%+v", env)
	}
	env = do(t, engine, nethttp.MethodGet, "/api/battles?limit=5", nil)
	var reports []json.RawMessage
	if err := json.Unmarshal(env.Data, &reports); err != nil || len(reports) != 1 {
		t.Fatalf("reports=%d err=%v", len(reports), err)
	}
	env = do(t, engine, nethttp.MethodGet, "/api/battles/unknown", nil)
	if env.Code != transport.NotFound {
		t.Fatalf("env=%+v", env)
	}
}
