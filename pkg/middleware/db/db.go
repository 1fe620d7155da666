package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	postgres "gorm.io/driver/postgres"
	gorm "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	tracing "gorm.io/plugin/opentelemetry/tracing"

	logger "github.com/openwms/procflow/pkg/middleware/logger"
)

type LogConf struct {
	Level string
}

type Config struct {
	Host   string
	Port   int
	User   string
	PW     string
	DBName string
	LogConf
}

// Datastore owns the gorm handle. Exposed as an interface so repos can
// be exercised against fakes.
type Datastore interface {
	DBIns() *gorm.DB
	DBWithContext(ctx context.Context) *gorm.DB
}

type datastore struct {
	db *gorm.DB
}

func (d *datastore) DBIns() *gorm.DB { return d.db }

func (d *datastore) DBWithContext(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx)
}

var ds *datastore

// InitPostgres connects and installs the otel tracing plugin. Fatal on
// failure: the service cannot run without its database.
func InitPostgres(ctx context.Context, conf *Config) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		conf.Host, conf.Port, conf.User, conf.PW, conf.DBName)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLevel(conf.Level)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		logger.Fatalf(ctx, "connect postgres err: %+v", err)
	}

	if err := gdb.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		logger.Warnf(ctx, "install gorm tracing plugin err: %+v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Fatalf(ctx, "get sql db err: %+v", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ds = &datastore{db: gdb}
}

func ClosePostgres(ctx context.Context) {
	if ds == nil {
		return
	}
	sqlDB, err := ds.db.DB()
	if err != nil {
		logger.Warnf(ctx, "close postgres err: %+v", err)
		return
	}
	_ = sqlDB.Close()
	ds = nil
}

// DB returns the global datastore, nil before InitPostgres.
func DB() Datastore {
	if ds == nil {
		return nil
	}
	return ds
}

func gormLevel(s string) gormlogger.LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
