package handlers

import (
	"github.com/atosolution/cash_treasury_backend/cmd/docs"
	"github.com/atosolution/cash_treasury_backend/internal/core/domain"
	portssvc "github.com/atosolution/cash_treasury_backend/internal/core/ports/services"
	"github.com/atosolution/cash_treasury_backend/internal/middleware"
	"github.com/atosolution/cash_treasury_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)
	registerGoogleOAuthRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User, services.Journal)
	registerCurrencyRoutes(v1, services.Currency)
	registerCompanyRoutes(v1, services)
}

// registerCompanyRoutes registers company routes plus everything nested under
// a specific company: master data, journals, documents and reports.
func registerCompanyRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newCompanyHandler(services.Company)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("", h.listUserCompanies)
	}

	companySpecific := rg.Group("/companies/:companyID")
	{
		companySpecific.GET("", h.getCompany)
		companySpecific.PUT("", h.updateCompany)

		members := companySpecific.Group("/members")
		{
			members.GET("", h.listCompanyMembers)
			members.POST("", h.addCompanyMember)
			members.PUT("/:userID", h.updateCompanyMemberRole)
			members.DELETE("/:userID", h.removeCompanyMember)
		}

		registerAccountRoutes(companySpecific, services.Account)
		registerPartnerRoutes(companySpecific, services.Partner)
		registerInvoiceRoutes(companySpecific, services.Invoice)
		registerJournalRoutes(companySpecific, services.Journal)
		registerLedgerRoutes(companySpecific, services.Ledger)
		registerReportingRoutes(companySpecific, services.Reporting)

		registerCashDocumentRoutes(companySpecific, "cash-in", domain.Inbound, services.CashIn)
		registerCashDocumentRoutes(companySpecific, "cash-out", domain.Outbound, services.CashOut)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
