package database

import (
	"fmt"
	"log"
	"time"

	"testhub_backend/internal/config"
	"testhub_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectRetryInterval = 5 * time.Second

// InitDB opens the MySQL connection, retrying with a fixed backoff until the
// database is reachable, then runs migrations when asked to.
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	var db *gorm.DB
	var err error
	for {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.Printf("Database connection failed, retrying in %s: %v", connectRetryInterval, err)
		time.Sleep(connectRetryInterval)
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.Purchase{},
		&model.Result{},
		&model.ResultAnswer{},
	)
}

// EnsureDefaultAdmin creates a pre-verified administrator account from config
// if none exists. Missing credentials skip the bootstrap silently.
func EnsureDefaultAdmin(db *gorm.DB, cfg *config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", cfg.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := cfg.Name
	if name == "" {
		name = "Admin"
	}

	admin := &model.User{
		Name:       name,
		Email:      cfg.Email,
		Password:   string(hashed),
		Role:       model.Admin,
		IsVerified: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin created with email: %s", cfg.Email)
	return nil
}
