package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/configs"
)

type Store struct{ DB *gorm.DB }

func Open(cfg *configs.Config) *Store {
	dsn := cfg.DSN()

	var last error
	var g *gorm.DB
	for i := 0; i < 8; i++ {
		g, last = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if last == nil {
			break
		}
		time.Sleep(time.Duration(1<<i) * time.Second)
	}
	if last != nil {
		log.Fatalf("db open failed: %v", last)
	}

	if cfg.ReplicaDSN != "" {
		if err := g.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(cfg.ReplicaDSN)},
		})); err != nil {
			log.Fatalf("db replica register failed: %v", err)
		}
	}
	if err := g.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		log.Fatalf("db tracing plugin failed: %v", err)
	}

	sqlDB, err := g.DB()
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return &Store{DB: g}
}
