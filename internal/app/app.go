// Package app 组装存储、服务、处理器与路由，并负责 HTTP 服务的生命周期
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"Community_Portal/internal/config"
	"Community_Portal/internal/handler"
	"Community_Portal/internal/logger"
	"Community_Portal/internal/pkg"
	"Community_Portal/internal/repository"
	"Community_Portal/internal/repository/cache"
	mongorepo "Community_Portal/internal/repository/mongo"
	"Community_Portal/internal/repository/mysql"
	redisrepo "Community_Portal/internal/repository/redis"
	"Community_Portal/internal/router"
	"Community_Portal/internal/service"

	"github.com/gin-gonic/gin"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

type Deps struct {
	StoreName string
	Stores    Stores
	Sessions  repository.SessionStore
	Resets    repository.ResetTokenStore
	Publisher pkg.Publisher
	Mailer    pkg.Mailer
	JWT       *pkg.JWTManager

	AppURL      string
	ResetTTL    time.Duration
	HashCost    int
	CORSOrigins []string
	RateRPS     float64
	RateBurst   int
}

// NewEngine 根据依赖构建完整的 gin 引擎
func NewEngine(d Deps) *gin.Engine {
	notifier := service.NewChangeNotifier(d.Publisher)
	users := service.NewUserService(service.UserDeps{
		Users:    d.Stores.Users,
		Sessions: d.Sessions,
		Resets:   d.Resets,
		JWT:      d.JWT,
		Mailer:   d.Mailer,
		AppURL:   d.AppURL,
		ResetTTL: d.ResetTTL,
		HashCost: d.HashCost,
	})

	return router.InitRouter(router.Handlers{
		Schools: handler.NewSchoolHandler(service.NewSchoolService(d.Stores.Schools, notifier)),
		FAQs:    handler.NewFAQHandler(service.NewFAQService(d.Stores.FAQs, notifier)),
		News:    handler.NewNewsHandler(service.NewNewsService(d.Stores.News, notifier)),
		Events:  handler.NewEventHandler(service.NewEventService(d.Stores.Events, notifier)),
		HOA:     handler.NewHOAHandler(service.NewHOAService(d.Stores.HOA, notifier)),
		Links:   handler.NewLinkHandler(service.NewLinkService(d.Stores.Links, notifier)),
		Issues:  handler.NewIssueHandler(service.NewIssueService(d.Stores.Issues, notifier)),
		Users:   handler.NewUserHandler(users),
		Health:  handler.NewHealthHandler(d.StoreName, d.Stores.Ping),
	}, router.Options{
		Auth:        users,
		CORSOrigins: d.CORSOrigins,
		RateRPS:     d.RateRPS,
		RateBurst:   d.RateBurst,
	})
}

type App struct {
	cfg     config.Config
	engine  *gin.Engine
	closers []func(context.Context) error
}

// New 按配置连接外部依赖，任何一步失败都会释放已打开的资源
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := a.build(ctx)
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}
	a.engine = engine
	return a, nil
}

func (a *App) build(ctx context.Context) (*gin.Engine, error) {
	cfg := a.cfg
	stores, err := a.openStores(ctx)
	if err != nil {
		return nil, err
	}

	var sessions repository.SessionStore
	var resets repository.ResetTokenStore
	if cfg.Redis.Addr != "" {
		if err := redisrepo.Init(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return redisrepo.Close() })
		sessions = redisrepo.NewSessionRepository(redisrepo.Client)
		resets = redisrepo.NewResetRepository(redisrepo.Client)
		logger.Infof("session store: redis %s", cfg.Redis.Addr)
	} else {
		tokens := cache.NewTokenStore()
		sessions, resets = tokens, tokens
		logger.Warning("REDIS_ADDR not set, sessions are kept in memory")
	}

	var publisher pkg.Publisher = pkg.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		if err != nil {
			return nil, fmt.Errorf("create kafka producer: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return producer.Close() })
		publisher = producer
		logger.Infof("change events: kafka topic %s", cfg.Kafka.Topic)
	}

	return NewEngine(Deps{
		StoreName: cfg.StoreDriver,
		Stores:    stores,
		Sessions:  sessions,
		Resets:    resets,
		Publisher: publisher,
		Mailer: pkg.NewMailer(pkg.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}),
		JWT:         pkg.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expire),
		AppURL:      cfg.AppURL,
		ResetTTL:    cfg.Reset.TokenTTL,
		CORSOrigins: cfg.CORSOrigins,
		RateRPS:     cfg.RateLimit.RPS,
		RateBurst:   cfg.RateLimit.Burst,
	}), nil
}

func (a *App) openStores(ctx context.Context) (Stores, error) {
	switch a.cfg.StoreDriver {
	case config.DriverMySQL:
		err := mysql.InitDB(a.cfg.MySQL.DSN, mysql.PoolConfig{
			MaxOpenConns:    a.cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    a.cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: a.cfg.MySQL.ConnMaxLifetime,
		})
		if err != nil {
			return Stores{}, fmt.Errorf("connect mysql: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return mysql.Close() })
		if !a.cfg.IsProduction() {
			mysql.DB.Logger = mysql.DB.Logger.LogMode(gormlogger.Info)
		}
		if err := mysql.AutoMigrate(mysql.DB); err != nil {
			return Stores{}, fmt.Errorf("migrate mysql: %w", err)
		}
		logger.Info("store: mysql")
		return SQLStores(mysql.DB), nil
	default:
		if err := mongorepo.Init(ctx, a.cfg.Mongo.URI, a.cfg.Mongo.Database, a.cfg.Mongo.Timeout); err != nil {
			return Stores{}, fmt.Errorf("connect mongo: %w", err)
		}
		a.closers = append(a.closers, mongorepo.Close)
		if err := mongorepo.EnsureIndexes(ctx, mongorepo.DB); err != nil {
			return Stores{}, err
		}
		logger.Infof("store: mongo database %s", a.cfg.Mongo.Database)
		return MongoStores(mongorepo.DB), nil
	}
}

func (a *App) Handler() http.Handler {
	return a.engine
}

// Run 阻塞直到 ctx 结束，然后优雅关闭
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.Close(shutdownCtx)
	return nil
}

// Close 逆序释放资源
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Warningf("close: %v", err)
		}
	}
	a.closers = nil
}
