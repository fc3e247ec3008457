package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cinema-app/shop-api/internal/api/handler"
	"github.com/cinema-app/shop-api/internal/api/middleware"
	"github.com/cinema-app/shop-api/internal/core/ports"
	"github.com/cinema-app/shop-api/internal/core/service"
	mongodb "github.com/cinema-app/shop-api/internal/infrastructure/db/mongo"
	"github.com/cinema-app/shop-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// mailQueue is the asynchronous activation-email collaborator; tokenTTL is
// the registration token expiry window.
func NewRouter(db *mongo.Database, rdb *redis.Client, mailQueue ports.MailQueue, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("shop"))

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(db)
	regTokenRepo := mongodb.NewRegistrationTokenRepository(db)
	sessionRepo := mongodb.NewSessionTokenRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	photoRepo := mongodb.NewPhotoRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)

	// --- Services ---
	accountService := service.NewAccountService(accountRepo, regTokenRepo, sessionRepo, orderRepo, mailQueue, tokenTTL, log)
	sessionService := service.NewSessionService(accountRepo, sessionRepo, log)
	catalogService := service.NewCatalogService(productRepo, photoRepo, categoryRepo, log)
	orderService := service.NewOrderService(orderRepo, productRepo, accountRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(accountService, sessionService)
	userHandler := handler.NewUserHandler(accountService)
	productHandler := handler.NewProductHandler(catalogService)
	photoHandler := handler.NewPhotoHandler(catalogService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)

	auth := middleware.Auth(sessionService)
	owner := middleware.Owner("id")

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/register/activate", authHandler.Activate)
	e.POST("/login", authHandler.Login)
	e.POST("/login/token", authHandler.TokenLogin)

	// --- Users: reads are public, mutations are owner-only ---
	e.GET("/users/:id", userHandler.Get)
	e.PUT("/users/:id", userHandler.Update, auth, owner)
	e.PATCH("/users/:id", userHandler.Update, auth, owner)
	e.DELETE("/users/:id", userHandler.Delete, auth, owner)

	// --- Catalog and orders: reads are public, mutations need a session ---
	registerResource(e, "/products", auth, resourceHandlers{
		list: productHandler.List, get: productHandler.Get,
		create: productHandler.Create, update: productHandler.Update, delete: productHandler.Delete,
	})
	registerResource(e, "/photos", auth, resourceHandlers{
		list: photoHandler.List, get: photoHandler.Get,
		create: photoHandler.Create, update: photoHandler.Update, delete: photoHandler.Delete,
	})
	registerResource(e, "/categories", auth, resourceHandlers{
		list: categoryHandler.List, get: categoryHandler.Get,
		create: categoryHandler.Create, update: categoryHandler.Update, delete: categoryHandler.Delete,
	})
	registerResource(e, "/orders", auth, resourceHandlers{
		list: orderHandler.List, get: orderHandler.Get,
		create: orderHandler.Create, update: orderHandler.Update, delete: orderHandler.Delete,
	})

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

type resourceHandlers struct {
	list   echo.HandlerFunc
	get    echo.HandlerFunc
	create echo.HandlerFunc
	update echo.HandlerFunc
	delete echo.HandlerFunc
}

// registerResource wires the standard collection/detail routes for one
// resource: public reads, authenticated mutations.
func registerResource(e *echo.Echo, prefix string, auth echo.MiddlewareFunc, h resourceHandlers) {
	e.GET(prefix, h.list)
	e.GET(prefix+"/:id", h.get)
	e.POST(prefix, h.create, auth)
	e.PUT(prefix+"/:id", h.update, auth)
	e.PATCH(prefix+"/:id", h.update, auth)
	e.DELETE(prefix+"/:id", h.delete, auth)
}
