// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	appctx "ventasapi/internal/core/context"
	"ventasapi/internal/domain/auth"
	"ventasapi/internal/domain/sales"
	"ventasapi/internal/infrastructure/excel"
	"ventasapi/internal/infrastructure/http/v1/handlers"
	"ventasapi/internal/infrastructure/http/v1/middleware"
	"ventasapi/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Logger *logger.Logger

	// ReportingPool and AuthPool back the readiness probe.
	ReportingPool *pgxpool.Pool
	AuthPool      *pgxpool.Pool

	TokenValidator middleware.TokenValidator
	AuthService    *auth.Service
	SalesService   *sales.Service

	CORSOrigins []string
	Development bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(base, cfg.ReportingPool, cfg.AuthPool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	usersHandler := handlers.NewUsersHandler(base, cfg.AuthService)
	ventasHandler := handlers.NewVentasHandler(base, cfg.SalesService, excel.NewVentasRenderer())
	dashboardHandler := handlers.NewDashboardHandler(base, cfg.SalesService)
	ticketsHandler := handlers.NewTicketsHandler(base, cfg.SalesService)

	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints.
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Everything below requires a valid token.
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.TokenValidator))
		{
			protected.GET("/auth/me", authHandler.Me)

			ventas := protected.Group("/ventas-producto")
			{
				ventas.GET("/rows", ventasHandler.Rows)
				ventas.GET("/sucursales", ventasHandler.Sucursales)
				ventas.GET("/productos", ventasHandler.Productos)
				ventas.GET("/export/excel", ventasHandler.ExportExcel)
			}

			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/kpis", dashboardHandler.Kpis)
				dashboard.GET("/ventas-por-sucursal", dashboardHandler.VentasPorSucursal)
				dashboard.GET("/ventas-por-hora", dashboardHandler.VentasPorHora)
				dashboard.GET("/top-productos", dashboardHandler.TopProductos)
			}

			tickets := protected.Group("/tickets")
			{
				tickets.GET("", ticketsHandler.List)
				tickets.GET("/agentes", ticketsHandler.Agentes)
			}

			admin := protected.Group("/users")
			admin.Use(middleware.RequireRole(appctx.RoleAdmin))
			{
				admin.GET("", usersHandler.List)
				admin.PUT("/:id", usersHandler.Update)
				admin.PATCH("/:id", usersHandler.Update)
			}
		}
	}

	return router
}
