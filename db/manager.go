package db

import (
	"context"
	"fmt"
	"log"
	"shopfeed/config"
	"shopfeed/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

var ORM *gorm.DB

func dsnFromConfig(dbConf config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dbConf.Host, dbConf.Port, dbConf.User, dbConf.Password, dbConf.DBName,
	)
}

func ConnectDB() error {
	if ORM != nil {
		log.Println("ORM is already initialized")
		return nil
	}

	if config.AppConfig == nil {
		return fmt.Errorf("AppConfig is not loaded")
	}
	conf := config.AppConfig

	var dialector gorm.Dialector
	switch conf.Databases.Driver {
	case "sqlite":
		path := conf.Databases.Path
		if path == "" {
			path = "shopfeed.db"
		}
		dialector = sqlite.Open(path)
	case "postgres", "":
		if conf.Databases.Master.Host == "" {
			return fmt.Errorf("master database configuration is missing")
		}
		dialector = postgres.Open(dsnFromConfig(conf.Databases.Master))
	default:
		return fmt.Errorf("unknown database driver: %s", conf.Databases.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
			NoLowerCase:   false,
		},
	})
	if err != nil {
		return err
	}

	// Реплики только для postgres
	if conf.Databases.Driver != "sqlite" && len(conf.Databases.Replicas) > 0 {
		replicaDSNs := make([]gorm.Dialector, 0, len(conf.Databases.Replicas))
		for _, r := range conf.Databases.Replicas {
			replicaDSNs = append(replicaDSNs, postgres.Open(dsnFromConfig(r)))
		}
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicaDSNs,
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return err
		}
	}

	err = db.AutoMigrate(&models.Author{}, &models.Post{}, &models.Product{}, &models.ActionLog{})
	if err != nil {
		return err
	}

	ORM = db
	return nil
}

// GetReadOnlyDB возвращает подключение для чтения (реплики)
func GetReadOnlyDB(ctx context.Context) *gorm.DB {
	return ORM.WithContext(ctx).Clauses(dbresolver.Read)
}

// GetWriteDB возвращает подключение для записи (мастер)
func GetWriteDB(ctx context.Context) *gorm.DB {
	return ORM.WithContext(ctx).Clauses(dbresolver.Write)
}
