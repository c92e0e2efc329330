package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"authbackend/db"
)

type Config struct {
	MongoURL    string
	PostgresURL string
	DBType      string
	SecretKey   string
	Port        string
	PDFSavePath string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		MongoURL:    os.Getenv("MONGO_URL"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		DBType:      os.Getenv("DB_TYPE"),
		SecretKey:   os.Getenv("SECRET_KEY"),
		Port:        os.Getenv("PORT"),
		PDFSavePath: os.Getenv("PDF_SAVE_PATH"),
	}
	if cfg.DBType == "" {
		cfg.DBType = string(db.Mongo)
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.PDFSavePath == "" {
		cfg.PDFSavePath = "exports"
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("SECRET_KEY not set in environment")
	}
	return cfg, nil
}

// String masks the signing secret so the config can be logged safely.
func (c *Config) String() string {
	return fmt.Sprintf("Config{DBType: %s, Port: %s, SecretKey: ***}", c.DBType, c.Port)
}
