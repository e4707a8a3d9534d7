package main

import (
	battleactor "DotWars/internal/battle/actor"
	battleactors "DotWars/internal/battle/actors"
	battleport "DotWars/internal/battle/app/port"
	battlemem "DotWars/internal/battle/infra/persistence/memory"
	battlemysql "DotWars/internal/battle/infra/persistence/mysql"
	battlesqlite "DotWars/internal/battle/infra/persistence/sqlite"
	battleservice "DotWars/internal/battle/service"
	gateinterfaces "DotWars/internal/gate/interfaces"
	shareddb "DotWars/internal/shared/infrastructure/db"
	sharedmongo "DotWars/internal/shared/infrastructure/mongo"
	sharedsqlite "DotWars/internal/shared/infrastructure/sqlite"
	"DotWars/internal/shared/logs"
	"DotWars/internal/shared/security"
	"DotWars/internal/shared/serverconfig"
	transporthttp "DotWars/internal/shared/transport/http"
	"DotWars/internal/shared/transport/http/middleware"
	"DotWars/internal/shared/transport/ws"
	"DotWars/internal/shared/utils"
	worldactor "DotWars/internal/world/actor"
	worldactors "DotWars/internal/world/actors"
	worldport "DotWars/internal/world/app/port"
	"DotWars/internal/world/entity"
	worldmem "DotWars/internal/world/infra/persistence/memory"
	worldmongo "DotWars/internal/world/infra/persistence/mongodb"
	worldservice "DotWars/internal/world/service"
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the world and battle actors behind the HTTP admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverconfig.Load(cfgPath)
			return serve(serverconfig.Conf)
		},
	}
}

func serve(conf serverconfig.Config) error {
	if err := logs.Init("dotwars", conf.Log); err != nil {
		return err
	}
	defer logs.Sync()
	logs.Info("conf", zap.Any("conf", conf))
	log := logs.L()

	closers := make([]func(), 0, 2)
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	worldRepo, closeWorld, err := openWorldRepo(conf)
	if err != nil {
		return fmt.Errorf("open world store: %w", err)
	}
	closers = append(closers, closeWorld)

	battleRepo, closeBattle, err := openBattleRepo(conf)
	if err != nil {
		return fmt.Errorf("open battle store: %w", err)
	}
	closers = append(closers, closeBattle)

	stop, err := battleservice.CompileStopPolicy(conf.Simulation.BattleStopRule)
	if err != nil {
		return err
	}
	nodeID, err := utils.NodeIDFromEnv()
	if err != nil {
		return err
	}
	ids, err := utils.NewIDGenerator(nodeID)
	if err != nil {
		return err
	}

	worldSvc := worldservice.NewWorldService(
		worldservice.WithConstructionRate(conf.Simulation.ConstructionRate),
		worldservice.WithStartingMorale(conf.Simulation.StartingMorale),
		worldservice.WithLogger(log),
	)
	gen := worldservice.NewWorldGenerator(terrainPicker(conf.WorldGen))
	spec := worldservice.WorldSpec{
		Seed:      conf.WorldGen.Seed,
		Width:     conf.WorldGen.Width,
		Height:    conf.WorldGen.Height,
		Provinces: conf.WorldGen.Provinces,
		Factions:  conf.WorldGen.Factions,
	}

	system := protoactor.NewActorSystem()
	worldRT := worldactor.NewRuntime(system, worldactors.Deps{
		Repo:    worldRepo,
		Service: worldSvc,
		Bootstrap: func(id entity.WorldID) (*entity.World, error) {
			return worldSvc.GenerateWorld(id, gen, spec), nil
		},
		FlushEvery: conf.Simulation.FlushEvery,
		Logger:     log,
	}, conf.Simulation.WorldID, conf.Simulation.AskTimeout)
	battleRT := battleactor.NewRuntime(system, battleactors.Deps{
		Repo:    battleRepo,
		Service: battleservice.NewBattleService(stop, log),
		IDs:     ids,
		Logger:  log,
	}, conf.Simulation.AskTimeout)

	if !conf.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	addr := fmt.Sprintf("%s:%d", conf.HTTPServer.Host, conf.HTTPServer.Port)
	httpServer := transporthttp.NewHttpServer(addr, nil, log)
	gate := gateinterfaces.New(worldRT, battleRT, log)

	api := httpServer.Group().Group("/api")
	var wsOpts []ws.ServerOption
	if issuer, err := security.NewIssuer(conf.Auth.Secret, conf.Auth.TokenTTL); err == nil {
		api.Use(middleware.Auth(issuer, log))
		wsOpts = append(wsOpts, ws.WithVerifier(issuer))
	} else {
		logs.Warn("admin api auth disabled", zap.Error(err))
	}
	gate.HttpRegister(api)

	wsRouter := ws.NewRouter(log)
	gate.WsRegister(wsRouter)
	wsServer := ws.NewServer(wsRouter, log, wsOpts...)
	httpServer.Engine().GET("/ws", gin.WrapH(wsServer))

	ctx, stopSignal := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignal()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("http server listening", zap.String("addr", addr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("http server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case runErr = <-errCh:
		if runErr != nil {
			logs.Error("服务异常退出", zap.Error(runErr))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	wsServer.CloseAll()
	// actor 先停，保证最后一份世界快照和未归档战报写完再关存储
	worldRT.Shutdown()
	battleRT.Shutdown()
	system.Shutdown()
	return runErr
}

func openWorldRepo(conf serverconfig.Config) (worldport.WorldRepository, func(), error) {
	switch conf.Storage.World {
	case serverconfig.StoreMongoDB:
		client, err := sharedmongo.Open(conf.MongoDB, logs.Logger())
		if err != nil {
			return nil, nil, err
		}
		repo := worldmongo.NewWorldRepository(sharedmongo.Database(client, conf.MongoDB))
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil
	case serverconfig.StoreMemory, "":
		return worldmem.NewWorldRepository(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("world store %q not supported", conf.Storage.World)
	}
}

func openBattleRepo(conf serverconfig.Config) (battleport.BattleReportRepository, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch conf.Storage.Battle {
	case serverconfig.StoreMySQL:
		db, err := shareddb.Open(conf.MySQL)
		if err != nil {
			return nil, nil, err
		}
		repo := battlemysql.NewReportRepo(db)
		if err := repo.Migrate(ctx); err != nil {
			return nil, nil, err
		}
		return repo, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil
	case serverconfig.StoreSQLite:
		conn, err := sharedsqlite.Open(conf.SQLite)
		if err != nil {
			return nil, nil, err
		}
		repo := battlesqlite.NewReportRepo(conn)
		if err := repo.Migrate(ctx); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return repo, func() { _ = conn.Close() }, nil
	case serverconfig.StoreMemory, "":
		return battlemem.NewReportRepository(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("battle store %q not supported", conf.Storage.Battle)
	}
}
