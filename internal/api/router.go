package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ems-platform/employee-api/docs"
	"github.com/ems-platform/employee-api/internal/api/handler"
	"github.com/ems-platform/employee-api/internal/api/middleware"
	"github.com/ems-platform/employee-api/internal/core/domain"
	"github.com/ems-platform/employee-api/internal/core/ports"
)

// Deps carries everything the router needs to register routes.
type Deps struct {
	Employees ports.EmployeeService
	Exports   ports.ExportService
	Auth      ports.AuthService
	DB        *sql.DB
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("ems"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	employeeHandler := handler.NewEmployeeHandler(deps.Employees)
	exportHandler := handler.NewExportHandler(deps.Exports)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	e.POST("/api/auth/login", authHandler.Login)

	// --- Employee routes (JWT required; mutations are admin only) ---
	auth := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	employees := e.Group("/api/employees", auth)
	employees.GET("", employeeHandler.List)
	employees.GET("/departments", employeeHandler.Departments)
	employees.GET("/positions", employeeHandler.Positions)
	employees.GET("/department/:department", employeeHandler.ByDepartment)
	employees.GET("/stats/summary", employeeHandler.Statistics)
	employees.GET("/:id", employeeHandler.Get)
	employees.POST("", employeeHandler.Create, adminOnly)
	employees.PUT("/:id", employeeHandler.Update, adminOnly)
	employees.DELETE("/:id", employeeHandler.Delete, adminOnly)

	// --- Export routes (JWT required) ---
	export := e.Group("/api/export/employees", auth)
	export.GET("/csv", exportHandler.CSV)
	export.GET("/excel", exportHandler.Excel)

	return e
}
