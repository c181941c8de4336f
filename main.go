package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"barkod_bot/config"
	"barkod_bot/dashboard"
	"barkod_bot/dialog"
	"barkod_bot/handlers"
	"barkod_bot/lookup"
	"barkod_bot/middleware"
	"barkod_bot/storage"
	"barkod_bot/telegram"
)

func main() {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	logger.Info("🚀 Запуск barkod-бота...")
	cfg := config.LoadConfig()

	db := storage.ConnectPostgres(cfg.PostgresDSN)
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		logger.Fatalf("❌ Ошибка миграции схемы: %v", err)
	}

	products := storage.NewProductRepo(db)
	basket := storage.NewBasketRepo(db)
	rates := storage.NewRateRepo(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis настроен — сессии переживают рестарт; иначе держим их
	// в памяти с фоновой уборкой
	var sessions dialog.SessionStore
	if cfg.RedisAddr != "" {
		rdb := storage.ConnectRedis(cfg.RedisAddr)
		defer rdb.Close()
		sessions = dialog.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		logger.Warn("⚠️ REDIS_ADDR не задан, сессии живут в памяти процесса")
		mem := dialog.NewMemoryStore(cfg.SessionTTL)
		mem.StartJanitor(ctx, time.Hour)
		sessions = mem
	}

	var enricher dialog.Lookup
	if cfg.OpenFDABaseURL != "" {
		enricher = lookup.NewClient(cfg.OpenFDABaseURL, cfg.OpenFDAKey, logger)
	} else {
		logger.Info("ℹ️ OPENFDA_BASE_URL не задан, внешний справочник выключен")
	}

	dialogs := dialog.NewManager(sessions, products, basket, rates, enricher, cfg.AdminID, logger)
	bot := telegram.NewClient(cfg.BotToken, logger)
	webhook := handlers.NewWebhook(bot, dialogs, logger)

	mux := http.NewServeMux()
	mux.Handle("/telegram", middleware.WebhookAuth(cfg.WebhookSecret, webhook))
	mux.Handle("/status", dashboard.New(products))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("✅ Barkod-бот запущен"))
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Infof("🌐 Сервер запущен: http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("❌ Ошибка сервера: %v", err)
		}
	}()

	<-stop
	logger.Info("⏳ Завершение работы...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("❌ Ошибка завершения: %v", err)
	}

	logger.Info("✅ Завершение успешно.")
}
