package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Storage struct {
	db  *gorm.DB
	rds *redis.Client
	lg  zerolog.Logger
}

func NewStorage(mc *MysqlConfig, rc *RedisConfig, opts ...gorm.Option) (*Storage, error) {

	dsn := stgDsn(mc)
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Use a compatible writer for GORM's logger
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second, // Slow SQL threshold
			LogLevel:      logger.Warn, // Log level
			Colorful:      false,       // Disable color
		},
	)

	opts = append([]gorm.Option{&gorm.Config{Logger: gormLogger}}, opts...)
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn: sqlDB,
	}), opts...)
	if err != nil {
		return nil, err
	}

	rds := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", rc.ip, rc.port),
		Password: rc.password,
		DB:       rc.db, // memo. DB는 우선 0번 하나만 사용. 레디시는 0~15까지의 16개의 DB를 제공함.
	})

	stg := NewStorageWithClients(db, rds)
	if err := stg.initTables(); err != nil {
		return nil, err
	}
	return stg, nil
}

// NewStorageWithClients wraps already opened clients. Tables are not migrated.
func NewStorageWithClients(db *gorm.DB, rds *redis.Client) *Storage {
	return &Storage{
		db:  db,
		rds: rds,
		lg:  zerolog.New(os.Stdout).With().Str("Module", "Storage").Timestamp().Logger(),
	}
}

// Close closes the database and cache connections
func (s *Storage) Close() error {
	var errs []error
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to get underlying DB: %w", err))
		} else if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.rds != nil {
		if err := s.rds.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type MysqlConfig struct {
	user     string
	password string
	ip       string
	port     string
	scheme   string
}

func NewMysqlConfig(user string, password string, ip string, port string, scheme string) *MysqlConfig {
	return &MysqlConfig{
		user:     user,
		password: password,
		ip:       ip,
		port:     port,
		scheme:   scheme,
	}
}

type RedisConfig struct {
	password string
	ip       string
	port     string
	db       int
}

func NewRedisConfig(password string, ip string, port string, db int) *RedisConfig {
	return &RedisConfig{
		password: password,
		ip:       ip,
		port:     port,
		db:       db,
	}
}
