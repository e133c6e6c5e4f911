package api

import (
	"context"

	"github.com/forevertrendin/user_service/config"
	"github.com/forevertrendin/user_service/infra/queue"
	"github.com/forevertrendin/user_service/internal/api/rest/handlers"
	"github.com/forevertrendin/user_service/internal/api/rest/middleware"
	"github.com/forevertrendin/user_service/internal/domain"
	"github.com/forevertrendin/user_service/internal/helper"
	"github.com/forevertrendin/user_service/internal/interfaces"
	"github.com/forevertrendin/user_service/internal/repository"
	"github.com/forevertrendin/user_service/internal/services"
	"github.com/forevertrendin/user_service/pkg/blob"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config, logger *zap.Logger) {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		logger.Fatal("database connection error", zap.Error(err))
	}

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		logger.Fatal("migration error", zap.Error(err))
	}

	// ---------- Infra ----------
	producer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	store, err := newBlobStore(cfg)
	if err != nil {
		logger.Fatal("blob store init error", zap.Error(err))
	}

	authHelper := helper.SetupAuth(cfg.JWTSecret, cfg.TokenTTL)
	hasher := helper.NewPasswordHasher(cfg.BcryptCost)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, hasher, authHelper, producer, logger)
	uploadSvc := services.NewUploadService(userRepo, store, producer, logger, cfg.RemoteTimeout)

	// ---------- Handlers ----------
	authMw := middleware.AuthMiddleware(authHelper, logger)
	uploadHandler := handlers.NewUploadHandler(uploadSvc, logger)
	userHandler := handlers.NewUserHandler(userSvc, store, logger)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	userHandler.SetupRoutes(app, authMw, uploadHandler)

	// ---------- Listen ----------
	logger.Info("listening", zap.String("addr", cfg.ServerPort))
	if err := app.Listen(cfg.ServerPort); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newBlobStore(cfg config.Config) (interfaces.BlobStore, error) {
	switch cfg.BlobBackend {
	case "cloudinary":
		return blob.NewCloudinaryStore(cfg.CloudinaryURL)
	default:
		return blob.NewS3Store(context.Background(), blob.S3Options{
			Region:       cfg.AWSRegion,
			AccessKey:    cfg.AWSAccessKey,
			SecretKey:    cfg.AWSSecretKey,
			Bucket:       cfg.S3Bucket,
			BaseEndpoint: cfg.S3Endpoint,
		})
	}
}
