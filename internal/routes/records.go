package routes

import (
	"autoapi/internal/handlers"

	"github.com/gin-gonic/gin"
)

type RecordRoutes struct {
	recordHandler *handlers.RecordHandler
}

func NewRecordRoutes(recordHandler *handlers.RecordHandler) *RecordRoutes {
	return &RecordRoutes{
		recordHandler: recordHandler,
	}
}

// RegisterRoutes mounts the generic CRUD surface. The :table segment
// matches any table name except the literal table_configurations path,
// which the static configuration routes take precedence over.
func (r *RecordRoutes) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	{
		api.GET("/:table", r.recordHandler.List)
		api.POST("/:table", r.recordHandler.Create)
		api.GET("/:table/:id", r.recordHandler.Get)
		api.PUT("/:table/:id", r.recordHandler.Update)
		api.DELETE("/:table/:id", r.recordHandler.Delete)
	}
}
