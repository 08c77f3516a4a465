package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoapi/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, metaHandler *handlers.MetaHandler, configHandler *handlers.TableConfigurationHandler, recordHandler *handlers.RecordHandler) {
	root := router.Group("")

	metaRoutes := NewMetaRoutes(metaHandler)
	metaRoutes.RegisterRoutes(root)

	// Static configuration routes register before the :table wildcard so
	// /api/table_configurations resolves to them.
	configRoutes := NewTableConfigurationRoutes(configHandler)
	configRoutes.RegisterRoutes(root)

	recordRoutes := NewRecordRoutes(recordHandler)
	recordRoutes.RegisterRoutes(root)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
