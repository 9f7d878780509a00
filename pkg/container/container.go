// Package container wires configuration, infrastructure and the domain
// layers together for both the API server and the worker.
package container

import (
	"context"
	"fmt"

	"bookstore-backoffice/internal/config"
	cataloghandler "bookstore-backoffice/internal/domains/catalog/handler"
	catalogrepo "bookstore-backoffice/internal/domains/catalog/repository"
	catalogservice "bookstore-backoffice/internal/domains/catalog/service"
	orderhandler "bookstore-backoffice/internal/domains/order/handler"
	orderrepo "bookstore-backoffice/internal/domains/order/repository"
	orderservice "bookstore-backoffice/internal/domains/order/service"
	purchasehandler "bookstore-backoffice/internal/domains/purchase/handler"
	purchaserepo "bookstore-backoffice/internal/domains/purchase/repository"
	purchaseservice "bookstore-backoffice/internal/domains/purchase/service"
	returnhandler "bookstore-backoffice/internal/domains/returns/handler"
	returnrepo "bookstore-backoffice/internal/domains/returns/repository"
	returnservice "bookstore-backoffice/internal/domains/returns/service"
	statistichandler "bookstore-backoffice/internal/domains/statistic/handler"
	statisticrepo "bookstore-backoffice/internal/domains/statistic/repository"
	statisticservice "bookstore-backoffice/internal/domains/statistic/service"
	userhandler "bookstore-backoffice/internal/domains/user/handler"
	userrepo "bookstore-backoffice/internal/domains/user/repository"
	userservice "bookstore-backoffice/internal/domains/user/service"
	infracache "bookstore-backoffice/internal/infrastructure/cache"
	"bookstore-backoffice/internal/infrastructure/database"
	"bookstore-backoffice/pkg/cache"
	"bookstore-backoffice/pkg/idgen"
	"bookstore-backoffice/pkg/jwt"
	"bookstore-backoffice/pkg/logger"
)

type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache
	JWT    *jwt.Manager

	CatalogService   catalogservice.CatalogService
	PurchaseService  purchaseservice.PurchaseService
	OrderService     orderservice.OrderService
	ReturnService    returnservice.ReturnService
	StatisticService statisticservice.StatisticService
	UserService      userservice.UserService

	CatalogHandler   *cataloghandler.CatalogHandler
	PurchaseHandler  *purchasehandler.PurchaseHandler
	OrderHandler     *orderhandler.OrderHandler
	ReturnHandler    *returnhandler.ReturnHandler
	StatisticHandler *statistichandler.StatisticHandler
	UserHandler      *userhandler.UserHandler

	redis *infracache.RedisCache
}

// New connects the infrastructure and builds every repository, service and
// handler.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	redisCache := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	var appCache cache.Cache = redisCache
	if err := redisCache.Connect(ctx); err != nil {
		// The statistic views degrade to direct reads without Redis.
		logger.Warn("redis unavailable, caching disabled", map[string]interface{}{
			"error": err.Error(),
		})
		appCache = nil
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	gen := idgen.New()

	c := &Container{
		Config: cfg,
		DB:     db,
		Cache:  appCache,
		JWT:    jwtManager,
		redis:  redisCache,
	}

	catalogRepository := catalogrepo.NewPostgresRepository(db.Pool)
	purchaseRepository := purchaserepo.NewPostgresRepository(db.Pool)
	orderRepository := orderrepo.NewPostgresRepository(db.Pool)
	returnRepository := returnrepo.NewPostgresRepository(db.Pool)
	statisticRepository := statisticrepo.NewPostgresRepository(db.Pool)
	userRepository := userrepo.NewPostgresRepository(db.Pool)

	c.CatalogService = catalogservice.NewCatalogService(catalogRepository)
	c.PurchaseService = purchaseservice.NewPurchaseService(purchaseRepository, gen, appCache)
	c.OrderService = orderservice.NewOrderService(orderRepository, gen, appCache)
	c.ReturnService = returnservice.NewReturnService(returnRepository, gen, appCache)
	c.StatisticService = statisticservice.NewStatisticService(statisticRepository, appCache)
	c.UserService = userservice.NewUserService(userRepository, jwtManager)

	c.CatalogHandler = cataloghandler.NewCatalogHandler(c.CatalogService)
	c.PurchaseHandler = purchasehandler.NewPurchaseHandler(c.PurchaseService)
	c.OrderHandler = orderhandler.NewOrderHandler(c.OrderService)
	c.ReturnHandler = returnhandler.NewReturnHandler(c.ReturnService)
	c.StatisticHandler = statistichandler.NewStatisticHandler(c.StatisticService)
	c.UserHandler = userhandler.NewUserHandler(c.UserService)

	return c, nil
}

// Close releases the infrastructure connections.
func (c *Container) Close() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}
}
