package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoapi/internal/responses"
	"autoapi/internal/services"
)

type MetaHandler struct {
	metadataService *services.MetadataService
}

func NewMetaHandler(metadataService *services.MetadataService) *MetaHandler {
	return &MetaHandler{
		metadataService: metadataService,
	}
}

// ListTables handles GET /meta/tables
func (h *MetaHandler) ListTables(c *gin.Context) {
	tables, err := h.metadataService.ListTables(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}
	if tables == nil {
		tables = []string{}
	}

	responses.Success(c, http.StatusOK, tables, "Tables retrieved successfully")
}

// DescribeTable handles GET /meta/table/:table
func (h *MetaHandler) DescribeTable(c *gin.Context) {
	table := c.Param("table")

	meta, err := h.metadataService.DescribeTable(c.Request.Context(), table)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, meta, "Table metadata retrieved successfully")
}

// Refresh handles POST /meta/refresh
func (h *MetaHandler) Refresh(c *gin.Context) {
	h.metadataService.InvalidateCache()

	responses.Success(c, http.StatusOK, nil, "Metadata cache cleared")
}
