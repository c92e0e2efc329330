package main

import (
	"net/http"

	"go.uber.org/zap"

	"authbackend/auth"
	"authbackend/config"
	"authbackend/db"
	"authbackend/db/mongo"
	"authbackend/db/postgres"
	"authbackend/handlers"
	"authbackend/middleware"
	"authbackend/repository"
	"authbackend/routes"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	logger.Info("Loaded configuration", zap.Stringer("config", cfg))

	// A failed database connection is logged and the server still comes up;
	// requests then answer 503 until the store is reachable.
	var database db.DB
	var userRepo repository.UserRepository

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		if err := db.RunMigrations(cfg.PostgresURL, logger); err != nil {
			logger.Error("Migrations failed", zap.Error(err))
		}

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			logger.Error("Postgres is not connected", zap.Error(err))
		}
		database = pg
		userRepo = repository.NewPostgresUserRepo(pg.Conn, logger)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			logger.Error("Mongo is not connected", zap.Error(err))
		}
		database = mg
		userRepo = repository.NewMongoUserRepo(mg.Client, logger)

	default:
		logger.Fatal("DB_TYPE not supported", zap.String("db_type", cfg.DBType))
	}
	defer database.Disconnect()

	tokens := auth.NewTokenService(cfg.SecretKey)

	userHandler := &handlers.UserHandler{Repo: userRepo, Tokens: tokens, Log: logger}
	pdfHandler := &handlers.PDFHandler{Repo: userRepo, SavePath: cfg.PDFSavePath, Log: logger}
	authmw := &middleware.Auth{Repo: userRepo, Tokens: tokens, Log: logger}

	routes.SetupRoutes(userHandler, pdfHandler, authmw, logger)

	logger.Info("Server running", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
