package router

import (
	"github.com/gin-gonic/gin"

	"entregas/internal/config"
	"entregas/internal/handler"
	"entregas/internal/middleware"
	"entregas/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	importH *handler.ImportHandler,
	deliveryH *handler.DeliveryHandler,
	operatorH *handler.OperatorHandler,
	companyH *handler.CompanyHandler,
	driverH *handler.DriverHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(&cfg.CORS))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	v1.POST("/auth/login", authH.Login)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// NFe archive import
	protected.POST("/nfe/importar-zip", importH.ImportZip)

	// Deliveries
	entregas := protected.Group("/entregas")
	entregas.POST("", deliveryH.Create)
	entregas.GET("", deliveryH.List)
	entregas.GET("/exportar", deliveryH.Export)
	entregas.GET("/:id/itens", deliveryH.ListItems)

	// Back-office users
	usuarios := protected.Group("/usuarios")
	usuarios.POST("", operatorH.Create)
	usuarios.GET("", operatorH.List)
	usuarios.GET("/:codusu", operatorH.GetByID)
	usuarios.PUT("/:codusu", operatorH.Update)

	// Companies
	empresas := protected.Group("/empresas")
	empresas.POST("", companyH.Create)
	empresas.GET("", companyH.List)
	empresas.PUT("/:codemp", companyH.Update)

	// Drivers
	motoristas := protected.Group("/motoristas")
	motoristas.POST("", driverH.Create)
	motoristas.GET("", driverH.List)

	return r
}
