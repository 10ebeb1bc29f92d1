package main

import (
	"context"
	"net/http"

	inventoryapp "github.com/farhanmaulid/commerce-inventory/application/inventory"
	orderapp "github.com/farhanmaulid/commerce-inventory/application/order"
	"github.com/farhanmaulid/commerce-inventory/cmd/config"
	redisclient "github.com/farhanmaulid/commerce-inventory/cmd/redis"
	orderRepo "github.com/farhanmaulid/commerce-inventory/repository/order"
	productRepo "github.com/farhanmaulid/commerce-inventory/repository/product"
	redisRepo "github.com/farhanmaulid/commerce-inventory/repository/redis"
	stockhistoryRepo "github.com/farhanmaulid/commerce-inventory/repository/stockhistory"
	txRepo "github.com/farhanmaulid/commerce-inventory/repository/tx"
	"github.com/farhanmaulid/commerce-inventory/thirdparty/rabbitmq"
	"github.com/farhanmaulid/commerce-inventory/transport"
	"github.com/farhanmaulid/commerce-inventory/utils/logger"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// @title COMMERCE INVENTORY API
// @version 1.0
// @description Inventory reservation and order fulfillment API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize RabbitMQ publisher for reservation expiry scheduling
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
	}
	defer func() {
		_ = publisher.Close()
	}()

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	StockHistoryRepo := stockhistoryRepo.NewStockHistoryRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	InventoryApp := inventoryapp.NewInventoryApp(cfg, TxRepo, ProductRepo, StockHistoryRepo, RedisRepo)
	OrderApp := orderapp.NewOrderApp(cfg, TxRepo, OrderRepo, ProductRepo, InventoryApp, publisher)

	httpTransport := transport.NewTransport(cfg, InventoryApp, OrderApp)

	// Start expiration consumer: releases stock held by orders stuck in
	// PENDING past the reservation window
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.Internal.APIURL, cfg.Internal.APIKey)
	if err != nil {
		logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
	}
	defer func() {
		_ = consumer.Close()
	}()
	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("err start expiration consumer", zap.Error(err))
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
