package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/joefazee/betpoints/app"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/app/bets"
	"github.com/joefazee/betpoints/app/database"
	apiDoc "github.com/joefazee/betpoints/app/doc"
	"github.com/joefazee/betpoints/app/games"
	"github.com/joefazee/betpoints/app/leaderboard"
	"github.com/joefazee/betpoints/app/ledger"
	"github.com/joefazee/betpoints/app/media"
	"github.com/joefazee/betpoints/app/social"
	"github.com/joefazee/betpoints/app/user"
	"github.com/joefazee/betpoints/internal/cache"
	"github.com/joefazee/betpoints/internal/deps"
	"github.com/joefazee/betpoints/internal/events"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/internal/metrics"
	"github.com/joefazee/betpoints/internal/router"
	"github.com/joefazee/betpoints/internal/sanitizer"
	"github.com/joefazee/betpoints/internal/security"
)

// @title Betpoints API
// @version 1.0
// @description Points wagering on games with house and peer-to-peer bets, a leaderboard and a social feed.

// @contact.name API Support
// @license.name MIT License
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	flag.String("config", "", "optional config file (.env or yaml)")
	runMigrations := flag.Bool("migrate", false, "apply pending migrations before starting")
	flag.Parse()

	cfg, err := app.LoadConfig()
	if err != nil {
		logger.NewZeroLogger(os.Stderr, logger.LevelInfo, nil).Fatal(err, map[string]interface{}{"stage": "config"})
	}

	log := logger.NewZeroLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel), logger.Fields{
		"service": "betpoints-api",
		"env":     cfg.Env,
	})

	if *runMigrations {
		if err := database.Migrate(&cfg.DB); err != nil {
			log.Fatal(err, map[string]interface{}{"stage": "migrate"})
		}
		log.Info("migrations applied", nil)
	}

	db, err := database.New(&cfg.DB)
	if err != nil {
		log.Fatal(err, map[string]interface{}{"stage": "database"})
	}

	cacheService, err := cache.New[string](cfg.Cache)
	if err != nil {
		log.Fatal(err, map[string]interface{}{"stage": "cache"})
	}
	if closer, ok := cacheService.(io.Closer); ok {
		defer closer.Close()
	}

	tokenMaker, err := security.NewPasetoMaker(cfg.User.SymmetricKey)
	if err != nil {
		log.Fatal(err, map[string]interface{}{"stage": "token maker"})
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var publisher events.Publisher = events.NewLogPublisher(log)
	if cfg.Kafka.Enabled {
		w := events.NewWriter(cfg.Kafka)
		defer w.Close()
		publisher = events.NewKafkaPublisher(w, cfg.Kafka.WriteTimeout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container := deps.NewContainer(db, tokenMaker, sanitizer.NewHTMLStripper(), log, cacheService).
		WithMetrics(m).
		WithPublisher(publisher)

	if err := media.InitStorage(ctx, container, &cfg.Storage); err != nil {
		log.Fatal(err, map[string]interface{}{"stage": "object storage"})
	}
	ledger.InitRepositories(container)
	bets.InitRepositories(container, &cfg.Bets)
	games.InitRepositories(container)
	leaderboard.InitRepositories(container, &cfg.Leaderboard)
	social.InitRepositories(container)
	user.InitRepositories(container, &cfg.User)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(log, m), api.CorsMiddleware(), api.TimeoutMiddleware(cfg.RequestTimeout))
	r.GET("/api/v1/healthz", api.HealthCheck(cfg.Env, database.Pinger(db)))

	mounter := router.NewMounter(container, "/api/v1", user.Authenticator(container))
	mounter.Public(r).Mount(user.MountPublic, games.MountPublic, social.MountPublic)
	mounter.Authenticated(r).Mount(
		user.MountAuthenticated,
		ledger.MountAuthenticated,
		bets.MountAuthenticated,
		leaderboard.MountAuthenticated,
		social.MountAuthenticated,
	)
	mounter.Admin(r).Mount(games.MountAdmin, bets.MountAdmin, ledger.MountAdmin, user.MountAdmin)
	apiDoc.Init(r, cfg.Env, cfg.Addr())

	settler := container.GetService(bets.SettlerKey).(bets.Settler)
	go bets.NewSweeper(settler, &cfg.Bets, log).Run(ctx)
	go user.NewTokenPurger(user.Repo(container), cfg.TokenPurgeEvery, log).Run(ctx)

	metricsServer := metrics.StartServer(cfg.Metrics.Port, reg, database.Pinger(db), func(err error) {
		log.Error(err, map[string]interface{}{"component": "metrics_server"})
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("api listening", map[string]interface{}{"addr": srv.Addr, "metrics_port": cfg.Metrics.Port})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err, map[string]interface{}{"component": "http_server"})
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, map[string]interface{}{"component": "http_server"})
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, map[string]interface{}{"component": "metrics_server"})
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("stopped", nil)
}
