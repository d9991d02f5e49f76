package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkravchuk/bookshop-platform/internal/api/handlers"
	"github.com/mkravchuk/bookshop-platform/internal/api/middleware"
	"github.com/mkravchuk/bookshop-platform/internal/cache"
	"github.com/mkravchuk/bookshop-platform/internal/config"
	"github.com/mkravchuk/bookshop-platform/internal/health"
	"github.com/mkravchuk/bookshop-platform/internal/metrics"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/repositories"
	"github.com/mkravchuk/bookshop-platform/internal/services"
	"github.com/mkravchuk/bookshop-platform/internal/tracing"
	"github.com/mkravchuk/bookshop-platform/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := tracing.Setup(context.Background(), &cfg.Tracing)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repositories.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repositories.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateLimitRepo := repositories.NewRateLimitRepo(redisClient, cfg)
	bookCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	jwtKey := []byte(cfg.Security.JWTKey)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := services.NewUserService(repos.Users, rateLimitRepo, jwtKey, cfg.Security.TokenTTL)
	authHandler := handlers.NewAuthHandler(userService)
	categoryService := services.NewCategoryService(repos.Categories)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	bookService := services.NewBookService(repos.Books, repos.Categories, bookCache, cfg.Cache.DefaultTTL)
	bookHandler := handlers.NewBookHandler(bookService)
	cartService := services.NewCartService(repos.Carts, repos.Books)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := services.NewOrderService(repos.Orders, repos.Carts, repos.Users, emailService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error setting up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/v1/auth/register", authHandler.Register())
	routerMux.HandleFunc("POST /api/v1/auth/login", authHandler.Login())

	routerMux.HandleFunc("GET /api/v1/books", bookHandler.ListBooks())
	routerMux.HandleFunc("GET /api/v1/books/search", bookHandler.SearchBooks())
	routerMux.HandleFunc("GET /api/v1/books/{id}", bookHandler.GetBook())
	routerMux.HandleFunc("POST /api/v1/books", authMiddleware.RequireRole(models.RoleAdmin, bookHandler.CreateBook()))
	routerMux.HandleFunc("PUT /api/v1/books/{id}", authMiddleware.RequireRole(models.RoleAdmin, bookHandler.UpdateBook()))
	routerMux.HandleFunc("DELETE /api/v1/books/{id}", authMiddleware.RequireRole(models.RoleAdmin, bookHandler.DeleteBook()))

	routerMux.HandleFunc("GET /api/v1/categories", categoryHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/categories/{id}", categoryHandler.GetCategory())
	routerMux.HandleFunc("GET /api/v1/categories/{id}/books", bookHandler.ListBooksByCategory())
	routerMux.HandleFunc("POST /api/v1/categories", authMiddleware.RequireRole(models.RoleAdmin, categoryHandler.CreateCategory()))
	routerMux.HandleFunc("PUT /api/v1/categories/{id}", authMiddleware.RequireRole(models.RoleAdmin, categoryHandler.UpdateCategory()))
	routerMux.HandleFunc("DELETE /api/v1/categories/{id}", authMiddleware.RequireRole(models.RoleAdmin, categoryHandler.DeleteCategory()))

	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{itemId}", authMiddleware.Authenticate(cartHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{itemId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))

	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.RequireRole(models.RoleUser, orderHandler.PlaceOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.RequireRole(models.RoleUser, orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}/items", authMiddleware.Authenticate(orderHandler.GetItems()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}/items/{itemId}", authMiddleware.Authenticate(orderHandler.GetItem()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}", authMiddleware.RequireRole(models.RoleAdmin, orderHandler.UpdateOrderStatus()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "bookshop-platform")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
