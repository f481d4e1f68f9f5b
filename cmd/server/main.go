package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"shopora-backend/internal/auth"
	"shopora-backend/internal/cart"
	"shopora-backend/internal/config"
	"shopora-backend/internal/handlers"
	"shopora-backend/internal/logger"
	"shopora-backend/internal/middleware"
	"shopora-backend/internal/seed"
	"shopora-backend/internal/server"
	"shopora-backend/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	bootLog, err := logger.New("dev")
	if err != nil {
		panic(err)
	}
	cfg := config.Load(bootLog)

	log, err := logger.New(cfg.GinMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("mongo connect failed", "error", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	log.Info("connected to mongodb", "db", cfg.MongoDB)

	db := client.Database(cfg.MongoDB)
	users := store.NewUserStore(db)
	products := store.NewProductStore(db)

	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal("ensure indexes failed", "error", err)
	}

	if cfg.SeedOnStart {
		if err := seed.Run(ctx, users, products, log); err != nil {
			log.Fatal("seeding failed", "error", err)
		}
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	carts := cart.NewService(users, products, log)
	authMW := middleware.NewAuthMiddleware(tokens, users, log)

	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:   cfg.AllowOrigins,
		Log:            log,
		AuthMiddleware: authMW,
		AuthHandler:    handlers.NewAuthHandler(users, tokens, log),
		ProductHandler: handlers.NewProductHandler(products, log),
		CartHandler:    handlers.NewCartHandler(carts, log),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
