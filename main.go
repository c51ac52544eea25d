package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-catalog/cmd/config"
	migration "recipe-catalog/cmd/database/migrate"
	"recipe-catalog/internal/utils"
	"recipe-catalog/internal/utils/logger"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	migrateOnly := flag.Bool("migrate", false, "run migrations and exit")
	flag.Parse()

	utils.LoadConfig(*configPath)

	log := logger.New(logger.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
	})
	defer log.Sync()
	logger.SetGlobal(log)

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}
	seeded, err := migration.SeedAdmin(
		context.Background(),
		db,
		utils.GetConfig("ADMIN_USERNAME"),
		utils.GetConfig("ADMIN_PASSWORD"),
	)
	if err != nil {
		log.Fatal("seed admin", zap.Error(err))
	}
	if seeded {
		log.Info("admin account created", zap.String("username", utils.GetConfig("ADMIN_USERNAME")))
	}
	log.Info("database migration complete")
	if *migrateOnly {
		return
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatal("build app", zap.Error(err))
	}

	go func() {
		addr := ":" + utils.GetConfig("APP_PORT")
		log.Info("http server listening", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			log.Error("http server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
