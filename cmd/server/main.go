package main

import (
	"log"

	"groshop-be/internal/admin"
	"groshop-be/internal/config"
	"groshop-be/internal/db"
	"groshop-be/internal/logger"
	"groshop-be/internal/middleware"
	"groshop-be/internal/order"
	"groshop-be/internal/payment"
	"groshop-be/internal/product"
	"groshop-be/internal/user"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)
	productHandler := product.NewHandler(productSvc)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo)
	orderHandler := order.NewHandler(orderSvc, userRepo)

	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	paymentSvc := payment.NewService(gateway, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, orderRepo)
	paymentHandler := payment.NewHandler(paymentSvc)

	adminRepo := admin.NewRepository(database)
	adminSvc := admin.NewService(adminRepo)
	adminHandler := admin.NewHandler(adminSvc)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggingMiddleware())
	r.Use(middleware.RateLimit())

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
		auth.GET("/profile", middleware.RequireAuth(), userHandler.GetProfile)
		auth.PUT("/profile", middleware.RequireAuth(), userHandler.UpdateProfile)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), productHandler.Create)
		products.PUT("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), productHandler.Update)
		products.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), productHandler.Delete)
	}

	orders := api.Group("/orders", middleware.RequireAuth())
	{
		orders.POST("", orderHandler.Create)
		orders.GET("", middleware.RequireAdmin(), orderHandler.ListAll)
		orders.GET("/myorders", orderHandler.ListMy)
		orders.GET("/:id", orderHandler.Get)
		orders.PUT("/:id/status", middleware.RequireAdmin(), orderHandler.UpdateStatus)
		orders.GET("/:id/invoice", orderHandler.Invoice)
	}

	payments := api.Group("/payments", middleware.RequireAuth())
	{
		payments.POST("/razorpay", paymentHandler.CreateIntent)
		payments.POST("/verify", paymentHandler.Verify)
	}

	api.GET("/admin/stats", middleware.RequireAuth(), middleware.RequireAdmin(), adminHandler.Stats)

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(r.Run(":" + cfg.AppPort))
}
