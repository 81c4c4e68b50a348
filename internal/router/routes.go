package router

import (
	"github.com/labstack/echo/v4"

	"github.com/fixpoints/fixpoints-api/internal/auth"
	"github.com/fixpoints/fixpoints-api/internal/config"
	"github.com/fixpoints/fixpoints-api/internal/entity"
	"github.com/fixpoints/fixpoints-api/internal/handler"
	middlewarepkg "github.com/fixpoints/fixpoints-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Users      *handler.UserAdminHandler
	Categories *handler.CategoryHandler
	Services   *handler.ServiceHandler
	Admin      *handler.AdminHandler
	Reviews    *handler.ReviewHandler
	Favorites  *handler.FavoriteHandler
	Places     *handler.PlacesHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", handlers.Health.Check)

	requireAuth := middlewarepkg.JWT(jwtManager)
	api := e.Group("/api")

	api.POST("/auth/register", handlers.Auth.Register)
	api.POST("/auth/login", handlers.Auth.Login)
	api.GET("/me", handlers.Auth.Me, requireAuth)

	places := api.Group("", middlewarepkg.RateLimiter(cfg.RateLimitPlaces))
	places.GET("/places", handlers.Places.Places)
	places.GET("/search", handlers.Places.Search)
	places.GET("/service-types", handlers.Places.ServiceTypes)

	api.GET("/categories", handlers.Categories.List)
	api.GET("/categories/:slug", handlers.Categories.Get)

	api.GET("/services", handlers.Services.List)
	api.GET("/services/:id", handlers.Services.Get)
	api.POST("/services", handlers.Services.Create, requireAuth)
	api.DELETE("/services/:id", handlers.Services.Delete, requireAuth)

	api.GET("/reviews", handlers.Reviews.List)
	api.POST("/reviews", handlers.Reviews.Create, requireAuth)
	api.DELETE("/reviews/:id", handlers.Reviews.Delete, requireAuth)
	api.POST("/reviews/:id/helpful", handlers.Reviews.MarkHelpful)

	favorites := api.Group("/favorites", requireAuth)
	favorites.GET("", handlers.Favorites.List)
	favorites.POST("", handlers.Favorites.Add)
	favorites.DELETE("", handlers.Favorites.Remove)

	admin := api.Group("/admin", requireAuth, middlewarepkg.RequireRole(entity.RoleAdmin))
	admin.GET("/users", handlers.Users.List)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)
	admin.POST("/services/import", handlers.Admin.ImportServices)
	admin.PATCH("/services/:id/verify", handlers.Admin.VerifyService)
	admin.PATCH("/reviews/:id/visibility", handlers.Admin.SetReviewVisibility)
}
