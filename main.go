package main

import (
	"github.com/forevertrendin/user_service/config"
	"github.com/forevertrendin/user_service/internal/api"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.JWTSecret == "" {
		logger.Fatal("missing JWT_SECRET")
	}

	api.StartServer(cfg, logger)
}
