package api

import (
	stdhttp "net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"

	intconfig "logisticshub/internal/config"
	"logisticshub/internal/domain"
	h "logisticshub/internal/http/handlers"
	"logisticshub/internal/http/middleware"
)

// NewRouter wires middleware and every API route. Handlers must already be
// configured with h.Configure.
func NewRouter(env intconfig.Env) *gin.Engine {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSOrigins),
		gzip.Gzip(gzip.DefaultCompression),
		secure.New(secure.Config{
			FrameDeny:          true,
			ContentTypeNosniff: true,
			BrowserXssFilter:   true,
			ReferrerPolicy:     "strict-origin-when-cross-origin",
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		intconfig.GetLogger().WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/db-check", h.DBCheck)
	api.POST("/auth/login", h.Login)

	authed := api.Group("", middleware.RequireAuth(h.Authenticator{}))
	admin := middleware.RequireRoles(domain.RoleAdmin)
	{
		authed.POST("/auth/logout", h.Logout)
		authed.GET("/auth/me", h.Me)
		authed.GET("/system/routes", admin, h.Routes)

		users := authed.Group("/users")
		users.GET("", admin, h.ListUsers)
		users.POST("", admin, h.CreateUser)
		users.PUT("/:id/password", h.ChangePassword)
		users.DELETE("/:id", admin, h.DeactivateUser)

		clients := authed.Group("/clients")
		clients.GET("", h.ListClients)
		clients.POST("", h.CreateClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)

		routes := authed.Group("/routes")
		routes.GET("", h.ListRoutes)
		routes.POST("", h.CreateRoute)
		routes.POST("/resolve", h.ResolveRoute)
		routes.PUT("/:id", h.UpdateRoute)
		routes.DELETE("/:id", h.DeleteRoute)

		drivers := authed.Group("/drivers")
		drivers.GET("", h.ListDrivers)
		drivers.POST("", h.CreateDriver)
		drivers.PUT("/:id", h.UpdateDriver)
		drivers.DELETE("/:id", h.DeleteDriver)

		trucks := authed.Group("/trucks")
		trucks.GET("", h.ListTrucks)
		trucks.POST("", h.CreateTruck)
		trucks.PUT("/:id", h.UpdateTruck)
		trucks.DELETE("/:id", h.DeleteTruck)

		tariffs := authed.Group("/tariffs")
		tariffs.GET("", h.ListTariffs)
		tariffs.POST("", h.UpsertTariff)
		tariffs.GET("/price", h.ResolvePrice)
		tariffs.DELETE("/:clientId/:routeId", h.DeleteTariff)

		trips := authed.Group("/trips")
		trips.GET("", h.ListTrips)
		trips.POST("", h.CreateTrip)
		trips.GET("/export.xlsx", h.ExportTrips)
		trips.POST("/bulk-delete", admin, h.BulkDeleteTrips)
		trips.GET("/:id", h.GetTrip)
		trips.PUT("/:id", h.UpdateTrip)
		trips.DELETE("/:id", h.DeleteTrip)

		expenses := authed.Group("/expenses")
		expenses.GET("", h.ListExpenses)
		expenses.POST("", h.CreateExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)

		imports := authed.Group("/imports")
		imports.GET("/formats", h.ListImportFormats)
		imports.POST("/trips/preview", h.PreviewTripImport)
		imports.POST("/trips/commit", h.CommitTripImport)
		imports.POST("/expenses/preview", h.PreviewExpenseImport)
		imports.POST("/expenses/commit", h.CommitExpenseImport)

		dashboard := authed.Group("/dashboard")
		dashboard.GET("", h.GetDashboard)
		dashboard.GET("/export.pdf", h.ExportDashboard)
	}

	h.SetRouter(r)
	return r
}
