package data

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/truthmint-labs/truthmint/src/TMApi/types"
)

func MustMySQL(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.AutoMigrate(&types.ProofRecord{}); err != nil {
		log.Fatalf("mysql migrate: %v", err)
	}
	return db
}
