package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/ecommerce-backend/docs"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/api/handlers"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/api/middleware"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/cache"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/config"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/health"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/metrics"
	repository "github.com/aaravmahajanofficial/ecommerce-backend/internal/repositories"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/security"
	service "github.com/aaravmahajanofficial/ecommerce-backend/internal/services"
	"github.com/aaravmahajanofficial/ecommerce-backend/internal/tracing"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

// @title			E-commerce Backend API
// @version		1.0
// @description	Users, carts, items and orders over REST.
// @host			localhost:8080
// @BasePath		/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Otel)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := shutdownTracing(flushCtx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	repos, err := repository.New(cfg)
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
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer redisClient.Close()

	itemCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)

	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	tokens := security.NewTokenManager([]byte(cfg.Security.JWTKey), time.Duration(cfg.Security.JWTExpiryHours)*time.Hour)

	userService := service.NewUserService(repos.User, rateLimiter, hasher, tokens)
	userHandler := handlers.NewUserHandler(userService)
	itemService := service.NewItemService(repos.Item, itemCache)
	itemHandler := handlers.NewItemHandler(itemService)
	cartService := service.NewCartService(repos.Cart, repos.User, itemService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order, repos.Cart, repos.User)
	orderHandler := handlers.NewOrderHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/user/create", userHandler.CreateUser())
	routerMux.HandleFunc("GET /api/user/id/{id}", authMiddleware.Authenticate(userHandler.FindByID()))
	routerMux.HandleFunc("GET /api/user/{username}", authMiddleware.Authenticate(userHandler.FindByUsername()))
	routerMux.HandleFunc("POST /login", userHandler.Login())
	routerMux.HandleFunc("POST /api/cart/addToCart", authMiddleware.Authenticate(cartHandler.AddToCart()))
	routerMux.HandleFunc("POST /api/cart/removeFromCart", authMiddleware.Authenticate(cartHandler.RemoveFromCart()))
	routerMux.HandleFunc("GET /api/cart/{username}", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/order/submit/{username}", authMiddleware.Authenticate(orderHandler.Submit()))
	routerMux.HandleFunc("GET /api/order/history/{username}", authMiddleware.Authenticate(orderHandler.History()))
	routerMux.HandleFunc("GET /api/item", authMiddleware.Authenticate(itemHandler.ListItems()))
	routerMux.HandleFunc("GET /api/item/{id}", authMiddleware.Authenticate(itemHandler.GetItemByID()))
	routerMux.HandleFunc("GET /api/item/name/{name}", authMiddleware.Authenticate(itemHandler.GetItemsByName()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Middleware chaining; metrics wraps the mux so the matched pattern is visible
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		slog.Error("⚠️ Server stopped with an error", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
