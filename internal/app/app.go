package app

import (
	"context"
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/salesdash/salesdash/config"
	"github.com/salesdash/salesdash/internal/domain"
	"github.com/salesdash/salesdash/internal/report"
	"github.com/salesdash/salesdash/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Application struct {
	appConfig *config.AppConfig
	location  *time.Location
	gormDB    *gorm.DB
	mongoDB   *mongo.Client
	store     store.TransactionStore
	report    *report.Service
	sched     *cron.Cron
}

// Ensure Application implements all interfaces
var (
	_ DBProvider     = (*Application)(nil)
	_ ConfigProvider = (*Application)(nil)
	_ StoreProvider  = (*Application)(nil)
	_ ReportProvider = (*Application)(nil)
	_ SeedProvider   = (*Application)(nil)
	_ AppContext     = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	loc, err := time.LoadLocation(appConfig.System.Location)
	if err != nil {
		loc = time.UTC
	}
	return &Application{appConfig: appConfig, location: loc}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

// DB returns the gorm handle; nil when the store is MongoDB.
func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

func (a *Application) Store() store.TransactionStore {
	return a.store
}

func (a *Application) Report() *report.Service {
	return a.report
}

// OverrideStore replaces the application's store (used in tests).
func (a *Application) OverrideStore(s store.TransactionStore) {
	a.store = s
	a.report = report.NewService(s)
}

func (a *Application) Init(cfg *config.AppConfig) error {
	a.appConfig = cfg
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
		a.location = loc
	}
	cfg.InitDirs()

	if err := initLogger(cfg); err != nil {
		return err
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.Database.Type {
	case "mongodb", "mongo":
		client, err := connectMongo(ctx, cfg.Database)
		if err != nil {
			return err
		}
		a.mongoDB = client
		ms := store.NewMongoTransactionStore(client, cfg.Database.Name)
		if err := ms.EnsureIndexes(ctx); err != nil {
			zap.L().Warn("mongodb index creation failed", zap.Error(err))
		}
		a.store = ms
	default:
		db, err := getDatabase(cfg.Database, cfg.GetDataDir())
		if err != nil {
			return err
		}
		a.gormDB = db
		if err := a.MigrateDB(false); err != nil {
			zap.S().Errorf("database migration failed: %v", err)
		}
		a.store = store.NewGormTransactionStore(db)
	}
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	a.report = report.NewService(a.store)
	return nil
}

func initLogger(cfg *config.AppConfig) error {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			return errors.Wrap(err, "build logger")
		}
	}

	zap.ReplaceGlobals(logger)
	return nil
}

// MigrateDB creates or updates the relational schema; a no-op on MongoDB.
func (a *Application) MigrateDB(track bool) (err error) {
	if a.gormDB == nil {
		return nil
	}
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEGUB_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	return db.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	if a.gormDB == nil {
		return
	}
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

// InitDb drops and recreates every table
func (a *Application) InitDb() error {
	if a.gormDB == nil {
		_, err := a.store.ReplaceAll(context.Background(), nil)
		return err
	}
	a.DropAll()
	return a.gormDB.Migrator().AutoMigrate(domain.Tables...)
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.store.Close(ctx); err != nil {
			zap.L().Warn("close store", zap.Error(err))
		}
	}
	_ = zap.L().Sync()
}
