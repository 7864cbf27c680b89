package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cleanspot/internal/clock"
	"cleanspot/internal/core/auth"
	"cleanspot/internal/core/config"
	"cleanspot/internal/core/kv"
	"cleanspot/internal/core/logger"
	"cleanspot/internal/core/server"
	"cleanspot/internal/service"
	"cleanspot/internal/store"
	"cleanspot/internal/transport/http/handler"
	"cleanspot/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.Build(logger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.File.Enable,
			Filename:   cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	defer cleanup()

	kvs := mustOpenKV(cfg, log)
	log.Info("store opened", zap.String("driver", cfg.Store.Driver))

	clk := clock.New(nil)
	st := store.New(kvs, clk, nil, log)
	svc := service.New(st, clk, nil, log)

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	h := handler.New(svc, jwter, handler.RandomApprover{}, log)
	r := router.New(log, h, jwter)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func mustOpenKV(cfg *config.Config, l *zap.Logger) kv.Store {
	switch cfg.Store.Driver {
	case "", "memory":
		return kv.NewMemory()
	case "redis":
		r := kv.NewRedis(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.Ping(ctx); err != nil {
			l.Fatal("redis open", zap.Error(err))
		}
		return r
	case "postgres", "mysql":
		g, err := kv.NewGorm(kv.GormOpts{
			Driver:             cfg.Store.Driver,
			DSN:                cfg.Store.DB.DSN,
			MaxOpenConns:       cfg.Store.DB.MaxOpenConns,
			MaxIdleConns:       cfg.Store.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.Store.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.Store.DB.LogLevel,
		})
		if err != nil {
			l.Fatal("db open", zap.Error(err))
		}
		return g
	default:
		l.Fatal("unknown store driver", zap.String("driver", cfg.Store.Driver))
		return nil
	}
}
