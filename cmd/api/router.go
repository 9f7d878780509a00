package main

import (
	"github.com/gin-gonic/gin"

	"bookstore-backoffice/internal/shared/middleware"
	"bookstore-backoffice/internal/shared/response"
	"bookstore-backoffice/pkg/container"
)

// NewRouter assembles the middleware chain and the route table.
func NewRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	router.GET("/health", healthCheck(c))
	router.POST("/auth/login", c.UserHandler.Login)

	authed := router.Group("/")
	authed.Use(middleware.Auth(c.JWT))
	{
		book := authed.Group("/book")
		{
			book.POST("/insert", c.CatalogHandler.InsertBook)
			book.POST("/update", c.CatalogHandler.UpdateBook)
			book.POST("/delete", c.CatalogHandler.DeleteBook)
			book.GET("/select", c.CatalogHandler.SelectBooks)
		}

		supplier := authed.Group("/supplier")
		{
			supplier.POST("/insert", c.CatalogHandler.InsertSupplier)
			supplier.POST("/update", c.CatalogHandler.UpdateSupplier)
			supplier.POST("/delete", c.CatalogHandler.DeleteSupplier)
			supplier.GET("/select", c.CatalogHandler.SelectSuppliers)
		}

		supplyInfo := authed.Group("/supply-info")
		{
			supplyInfo.POST("/insert", c.CatalogHandler.InsertQuote)
			supplyInfo.POST("/update", c.CatalogHandler.UpdateQuote)
			supplyInfo.POST("/delete", c.CatalogHandler.DeleteQuote)
			supplyInfo.GET("/select", c.CatalogHandler.SelectQuotes)
		}

		purchase := authed.Group("/purchase")
		{
			purchase.POST("/insert", c.PurchaseHandler.InsertPurchase)
			purchase.GET("/select", c.PurchaseHandler.SelectPurchases)
		}

		order := authed.Group("/order")
		{
			order.POST("/insert", c.OrderHandler.InsertOrder)
			order.GET("/select", c.OrderHandler.SelectOrders)
		}

		ret := authed.Group("/return")
		{
			ret.POST("/insert", c.ReturnHandler.InsertReturn)
			ret.GET("/select", c.ReturnHandler.SelectReturns)
		}

		statistic := authed.Group("/statistic")
		{
			statistic.GET("/stock/select", c.StatisticHandler.SelectStock)
			statistic.GET("/stock/shortage", c.StatisticHandler.SelectShortage)
			statistic.GET("/sales/rank/daily", c.StatisticHandler.DailyRank)
			statistic.GET("/sales/rank/monthly", c.StatisticHandler.MonthlyRank)
		}
	}

	return router
}

func healthCheck(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := map[string]string{
			"app":      c.Config.App.Name,
			"version":  c.Config.App.Version,
			"database": "ok",
			"cache":    "ok",
		}

		if err := c.DB.Ping(ctx.Request.Context()); err != nil {
			status["database"] = "unreachable"
			response.Failure(ctx)
			return
		}
		if c.Cache == nil {
			status["cache"] = "disabled"
		} else if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status["cache"] = "unreachable"
		}

		response.Success(ctx, status)
	}
}
