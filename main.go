package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/redis/go-redis/v9"

	"kelasku_backend/internals/configs"
	database "kelasku_backend/internals/databases"
	"kelasku_backend/internals/features/scheduling/listener"
	"kelasku_backend/internals/features/scheduling/lock"
	"kelasku_backend/internals/features/scheduling/planner/service"
	"kelasku_backend/internals/features/scheduling/scheduler"
	helper "kelasku_backend/internals/helpers"
	"kelasku_backend/internals/helpers/dbtime"
	applog "kelasku_backend/internals/helpers/logger"
	middlewares "kelasku_backend/internals/middlewares"
	routes "kelasku_backend/internals/route"
	"kelasku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	// `go run . seed` → isi kurikulum lalu keluar
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		db := configs.InitSeederDB()
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("❌ %v", err)
		}
		seeds.RunAllSeeds(db)
		return
	}

	schedCfg := configs.LoadSchedulingConfig()

	appLog, err := applog.New(configs.AppMode)
	if err != nil {
		log.Fatalf("❌ Gagal init logger: %v", err)
	}
	defer appLog.Sync()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR Cloudflare jika perlu
		ErrorHandler:            helper.FromFiberError,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timeout (batch planning butuh lebih lama dari request biasa)
	reqTimeout := configs.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		ctx, cancel := context.WithTimeout(c.Context(), reqTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app, appLog)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	if schedCfg.AutoMigrate {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}
	database.WarmUpQueries()

	// 🔒 lock per kelas: Redis kalau ada (multi instance), selain itu in-process
	var (
		rdb    *redis.Client
		locker lock.Locker
	)
	if schedCfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: schedCfg.RedisAddr, Password: schedCfg.RedisPassword})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Fatalf("❌ Redis tidak bisa dihubungi (%s): %v", schedCfg.RedisAddr, err)
		}
		cancel()
		locker = lock.NewRedisLocker(rdb)
		log.Println("✅ Redis terkoneksi, lock kelas terdistribusi.")
	}

	planner := service.New(database.DB, locker, dbtime.SystemClock{}, appLog, service.Config{
		HorizonWeeks: schedCfg.HorizonWeeks,
		Concurrency:  schedCfg.TopUpConcurrency,
		Location:     dbtime.LoadScheduleLocation(schedCfg.Timezone),
	})

	bgCtx, stopBg := context.WithCancel(context.Background())
	defer stopBg()

	// ⏱ scheduler setelah DB siap
	schedDone := scheduler.StartHorizonTopUpScheduler(bgCtx, planner, schedCfg.TopUpInterval, appLog)

	// 📣 LISTEN class_created (opsional)
	if schedCfg.ListenClassEvents {
		l := listener.New(listener.Config{
			DSN:     configs.PostgresDSN(),
			Channel: database.ClassCreatedChannel,
		}, planner, appLog)
		go func() {
			if err := l.Run(bgCtx); err != nil {
				appLog.Error("[LISTEN ERROR] listener berhenti", "error", err)
			}
		}()
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, routes.Deps{Planner: planner, Redis: rdb})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = reqTimeout + 5*time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: HTTP → background job → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	stopBg()
	select {
	case <-schedDone:
	case <-ctx.Done():
	}

	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
