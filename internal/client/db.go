package client

import (
	"log"
	"time"

	"github.com/SimelweN/rebooked-reads-sub008/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func InitSqliteClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Book{},
		&model.Order{},
		&model.OrderItem{},
		&model.Profile{},
		&model.BankingSubaccount{},
		&model.ContactMessage{},
		&model.Report{},
		&model.SuspendedUser{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}
