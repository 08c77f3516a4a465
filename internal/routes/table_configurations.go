package routes

import (
	"autoapi/internal/handlers"

	"github.com/gin-gonic/gin"
)

type TableConfigurationRoutes struct {
	configHandler *handlers.TableConfigurationHandler
}

func NewTableConfigurationRoutes(configHandler *handlers.TableConfigurationHandler) *TableConfigurationRoutes {
	return &TableConfigurationRoutes{
		configHandler: configHandler,
	}
}

func (r *TableConfigurationRoutes) RegisterRoutes(router *gin.RouterGroup) {
	configs := router.Group("/api/table_configurations")
	{
		configs.GET("", r.configHandler.List)
		configs.POST("", r.configHandler.Save)
		configs.GET("/:table", r.configHandler.Get)
		configs.DELETE("/:table", r.configHandler.Delete)
	}
}
