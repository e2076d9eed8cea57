package apigateway

import (
	"crop-asr-qa/backend/internal/auth"
	"crop-asr-qa/backend/internal/configmanagement"
	"crop-asr-qa/backend/internal/coreengine/vendoradapters"
	"crop-asr-qa/backend/internal/sessionmanagement"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the Gin router: a public login route plus the
// authenticated /api/v1 surface for sessions, catalogs and provider configs.
func SetupRouter(sessions *sessionmanagement.SessionService) *gin.Engine {
	router := gin.Default()

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", auth.LoginHandler)
	}

	api := router.Group("/api/v1")
	api.Use(auth.AuthMiddleware())
	{
		api.GET("/languages", configmanagement.ListLanguagesHandler)
		api.GET("/asr-providers", func(c *gin.Context) {
			c.JSON(200, vendoradapters.KnownProviders())
		})

		sessionRoutes := api.Group("/sessions")
		{
			sessionRoutes.POST("", sessions.StartSessionHandler)
			sessionRoutes.GET("", sessionmanagement.ListArchivedSessionsHandler)
			sessionRoutes.GET("/:id", sessions.GetSessionHandler)
			sessionRoutes.GET("/:id/current-item", sessions.CurrentItemHandler)
			sessionRoutes.POST("/:id/attempts", sessions.SubmitAttemptHandler)
			sessionRoutes.POST("/:id/advance", sessions.AdvanceHandler)
			sessionRoutes.POST("/:id/skip", sessions.SkipHandler)
			sessionRoutes.POST("/:id/end", sessions.EndSessionHandler)
			sessionRoutes.POST("/:id/finalize", sessions.FinalizeHandler)
			sessionRoutes.GET("/:id/report", sessions.ReportDownloadHandler)
		}

		catalogRoutes := api.Group("/catalogs")
		{
			catalogRoutes.POST("", configmanagement.UploadCatalogHandler)
			catalogRoutes.GET("", configmanagement.ListCatalogsHandler)
			catalogRoutes.GET("/:id", configmanagement.GetCatalogHandler)
		}

		providerRoutes := api.Group("/providers")
		{
			providerRoutes.POST("", configmanagement.CreateProviderConfigHandler)
			providerRoutes.GET("", configmanagement.ListProviderConfigsHandler)
			providerRoutes.GET("/:id", configmanagement.GetProviderConfigHandler)
			providerRoutes.PUT("/:id", configmanagement.UpdateProviderConfigHandler)
			providerRoutes.DELETE("/:id", configmanagement.DeleteProviderConfigHandler)
		}
	}

	return router
}
