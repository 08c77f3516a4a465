package routes

import (
	"autoapi/internal/handlers"

	"github.com/gin-gonic/gin"
)

type MetaRoutes struct {
	metaHandler *handlers.MetaHandler
}

func NewMetaRoutes(metaHandler *handlers.MetaHandler) *MetaRoutes {
	return &MetaRoutes{
		metaHandler: metaHandler,
	}
}

func (r *MetaRoutes) RegisterRoutes(router *gin.RouterGroup) {
	meta := router.Group("/meta")
	{
		meta.GET("/tables", r.metaHandler.ListTables)
		meta.GET("/table/:table", r.metaHandler.DescribeTable)
		meta.POST("/refresh", r.metaHandler.Refresh)
	}
}
