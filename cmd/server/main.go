package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexus-engine/internal/api"
	"nexus-engine/internal/audio"
	"nexus-engine/internal/config"
	"nexus-engine/internal/dashboard"
	"nexus-engine/internal/database"
	"nexus-engine/internal/gateway"
	"nexus-engine/internal/logging"
	"nexus-engine/internal/models"
	"nexus-engine/internal/store"
	"nexus-engine/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.ActivityDBDSN, logger)
	if err != nil {
		logger.Fatal("Failed to open activity database", zap.Error(err))
	}
	activity := database.NewActivityRepo(db)

	client, err := gateway.NewGenAI(ctx, gateway.GenAIConfig{
		APIKey:      cfg.GeminiAPIKey,
		BaseURL:     cfg.GeminiBaseURL,
		FunnelModel: cfg.FunnelModel,
		TTSModel:    cfg.TTSModel,
	})
	if err != nil {
		logger.Fatal("Failed to create AI gateway", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	gw := gateway.Instrument(client, gateway.NewMetrics(registry))

	hub := ws.NewHub(logger)
	player := audio.NewPlayer(hub, logger)

	campaigns := store.NewCampaignStore()
	campaigns.OnChange(func(c models.Campaign) {
		hub.BroadcastEvent(ws.EventCampaignUpdated, c)
	})
	seed := []models.Campaign{store.DefaultCampaign()}
	if cfg.SeedFile != "" {
		seed, err = store.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			logger.Fatal("Failed to load seed file", zap.String("path", cfg.SeedFile), zap.Error(err))
		}
	}
	if seeded, err := campaigns.EnsureSeeded(seed); err != nil {
		logger.Fatal("Failed to seed campaigns", zap.Error(err))
	} else if seeded {
		logger.Info("Seeded campaigns", zap.Int("count", len(seed)), zap.String("active", campaigns.ActiveID()))
	}

	orch := dashboard.NewOrchestrator(dashboard.Deps{
		Store:    campaigns,
		Gateway:  gw,
		Speaker:  player,
		Notifier: hub,
		Activity: activity,
		Logger:   logger.Named("dashboard"),
	})

	r := gin.New()
	r.Use(gin.Recovery(), api.RequestID(), api.AccessLog(logger.Named("http")), api.CORS())

	api.RegisterRoutes(r.Group("/api"), api.Handlers{
		Dashboard: api.NewDashboardHandler(orch),
		Campaigns: api.NewCampaignHandler(campaigns, orch),
		Funnels:   api.NewFunnelHandler(orch),
		Leads:     api.NewLeadHandler(orch),
		Activity:  api.NewActivityHandler(activity),
	})
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "clients": hub.Clients()})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		orch.Wait()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
