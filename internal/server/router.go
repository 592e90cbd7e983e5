package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/brandvault/brandvault-backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName        string
	AllowOrigins       []string
	HealthcheckHandler *handlers.HealthcheckHandler
	AssetHandler       *handlers.AssetHandler
	ShareHandler       *handlers.ShareHandler
	CollectionHandler  *handlers.CollectionHandler
	GuidelinesHandler  *handlers.GuidelinesHandler
	AnalyticsHandler   *handlers.AnalyticsHandler
	BulkHandler        *handlers.BulkHandler
	ExportHandler      *handlers.ExportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	router.POST("/share/:id", cfg.ShareHandler.ResolveShareLink)

	api := router.Group("/api")
	{
		// Assets
		api.POST("/assets", cfg.AssetHandler.CreateAsset)
		api.POST("/assets/upload", cfg.AssetHandler.UploadAsset)
		api.GET("/assets", cfg.AssetHandler.ListAssets)
		api.PUT("/assets/query-state", cfg.AssetHandler.SaveQueryState)
		api.POST("/assets/bulk", cfg.BulkHandler.Apply)
		api.GET("/assets/:id", cfg.AssetHandler.GetAsset)
		api.PATCH("/assets/:id", cfg.AssetHandler.UpdateAsset)
		api.DELETE("/assets/:id", cfg.AssetHandler.DeleteAsset)
		api.POST("/assets/:id/approve", cfg.AssetHandler.ApproveAsset)
		api.POST("/assets/:id/reject", cfg.AssetHandler.RejectAsset)
		api.POST("/assets/:id/primary", cfg.AssetHandler.SetAsPrimary)
		api.POST("/assets/:id/tags", cfg.AssetHandler.TagAsset)
		api.POST("/assets/:id/versions", cfg.AssetHandler.CreateVersion)
		api.GET("/assets/:id/versions", cfg.AssetHandler.GetVersions)
		api.POST("/assets/:id/revert", cfg.AssetHandler.RevertToVersion)
		api.POST("/assets/:id/download", cfg.AssetHandler.RecordDownload)
		api.POST("/assets/:id/usage", cfg.AssetHandler.RecordUsage)

		// Share links
		api.POST("/share-links", cfg.ShareHandler.CreateShareLink)
		api.GET("/share-links", cfg.ShareHandler.ListShareLinks)
		api.GET("/share-links/:id", cfg.ShareHandler.GetShareLink)

		// Collections
		api.POST("/collections", cfg.CollectionHandler.CreateCollection)
		api.GET("/collections", cfg.CollectionHandler.ListCollections)
		api.GET("/collections/:id", cfg.CollectionHandler.GetCollection)
		api.PATCH("/collections/:id", cfg.CollectionHandler.RenameCollection)
		api.DELETE("/collections/:id", cfg.CollectionHandler.DeleteCollection)
		api.PUT("/collections/:id/assets/:assetID", cfg.CollectionHandler.AddToCollection)
		api.DELETE("/collections/:id/assets/:assetID", cfg.CollectionHandler.RemoveFromCollection)

		// Guidelines
		api.POST("/guidelines", cfg.GuidelinesHandler.CreateGuidelines)
		api.GET("/guidelines", cfg.GuidelinesHandler.ListGuidelines)
		api.GET("/guidelines/:id", cfg.GuidelinesHandler.GetGuidelines)
		api.PATCH("/guidelines/:id", cfg.GuidelinesHandler.UpdateGuidelines)
		api.DELETE("/guidelines/:id", cfg.GuidelinesHandler.DeleteGuidelines)

		// Analytics and settings
		api.GET("/analytics", cfg.AnalyticsHandler.GetSummary)
		api.GET("/settings", cfg.AnalyticsHandler.GetSettings)
		api.PUT("/settings", cfg.AnalyticsHandler.UpdateSettings)

		// Export
		api.POST("/export/report", cfg.ExportHandler.MetadataReport)
		api.POST("/export/archive", cfg.ExportHandler.Archive)
	}

	return router
}
