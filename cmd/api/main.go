package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/fixpoints/fixpoints-api/internal/auth"
	"github.com/fixpoints/fixpoints-api/internal/cache"
	"github.com/fixpoints/fixpoints-api/internal/config"
	"github.com/fixpoints/fixpoints-api/internal/database"
	"github.com/fixpoints/fixpoints-api/internal/handler"
	"github.com/fixpoints/fixpoints-api/internal/logging"
	middlewarepkg "github.com/fixpoints/fixpoints-api/internal/middleware"
	"github.com/fixpoints/fixpoints-api/internal/places"
	"github.com/fixpoints/fixpoints-api/internal/repository"
	"github.com/fixpoints/fixpoints-api/internal/router"
	"github.com/fixpoints/fixpoints-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init("fixpoints-api", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	db, err := database.OpenGORM(pool, cfg.IsDevelopment())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open gorm")
	}
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	var store cache.Store = cache.NewMemory()
	if cfg.RedisURL != "" {
		client, err := cache.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		defer client.Close()
		store = cache.NewRedis(client, "fixpoints:")
	}

	if cfg.Places.APIKey == "" {
		log.Warn().Msg("GOOGLE_PLACES_API_KEY is not set, places endpoints will fail")
	}
	placesClient := places.NewClient(nil, cfg.Places.BaseURL, cfg.Places.APIKey, cfg.Places.ResultLimit)
	placesSource := places.NewCachedSource(placesClient, store, cfg.Places.CacheTTL)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	categoriesRepo := repository.NewGormCategoriesRepository(db)
	servicesRepo := repository.NewGormServicesRepository(db)
	reviewsRepo := repository.NewGormReviewsRepository(db)
	favoritesRepo := repository.NewGormFavoritesRepository(db)

	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	categoryService := service.NewCategoryService(categoriesRepo)
	catalogService := service.NewCatalogService(servicesRepo, categoriesRepo, nil)
	reviewService := service.NewReviewService(reviewsRepo, servicesRepo)
	favoriteService := service.NewFavoriteService(favoritesRepo, servicesRepo)
	searchService := service.NewSearchService(placesSource, cfg.Places)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Health:     handler.NewHealthHandler(pool),
		Auth:       handler.NewAuthHandler(authService),
		Users:      handler.NewUserAdminHandler(userService),
		Categories: handler.NewCategoryHandler(categoryService),
		Services:   handler.NewServiceHandler(catalogService),
		Admin:      handler.NewAdminHandler(catalogService, reviewService),
		Reviews:    handler.NewReviewHandler(reviewService),
		Favorites:  handler.NewFavoriteHandler(favoriteService),
		Places:     handler.NewPlacesHandler(searchService),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
