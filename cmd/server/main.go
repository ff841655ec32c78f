package main

import (
	"log"
	"net/http"

	"bookstall-be/internal/address"
	"bookstall-be/internal/book"
	"bookstall-be/internal/cart"
	"bookstall-be/internal/config"
	"bookstall-be/internal/db"
	"bookstall-be/internal/httpapi"
	"bookstall-be/internal/logger"
	"bookstall-be/internal/metrics"
	"bookstall-be/internal/middleware"
	"bookstall-be/internal/order"
	"bookstall-be/internal/review"
	"bookstall-be/internal/stock"
	"bookstall-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	bookRepo := book.NewRepository(database)
	bookSvc := book.NewService(bookRepo)

	checker := stock.NewChecker(bookRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, checker)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo)

	checkoutMetrics := &metrics.Checkout{}

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(
		orderRepo,
		bookRepo,
		cartRepo,
		addressRepo,
		checker,
		order.DefaultTransitions,
		checkoutMetrics,
	)

	api := httpapi.NewHandler(httpapi.Deps{
		Users:     userSvc,
		Books:     bookSvc,
		Carts:     cartSvc,
		Addresses: addressSvc,
		Orders:    orderSvc,
		Reviews:   reviewSvc,
		Checkout:  checkoutMetrics,
	})

	handler := logger.RequestIDMiddleware(
		middleware.AuthMiddleware(
			middleware.RateLimitMiddleware(
				middleware.LoggingMiddleware(api),
			),
		),
	)

	log.Printf("bookstall server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, handler))
}
