package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoapi/internal/apperrors"
	"autoapi/internal/responses"
	"autoapi/internal/services"
)

type TableConfigurationHandler struct {
	configService *services.TableConfigurationService
}

func NewTableConfigurationHandler(configService *services.TableConfigurationService) *TableConfigurationHandler {
	return &TableConfigurationHandler{
		configService: configService,
	}
}

// List handles GET /api/table_configurations
func (h *TableConfigurationHandler) List(c *gin.Context) {
	names, err := h.configService.ListConfiguredTables(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, names, "Table configurations retrieved successfully")
}

// Get handles GET /api/table_configurations/:table. A table without a
// configuration responds with a success envelope carrying no data.
func (h *TableConfigurationHandler) Get(c *gin.Context) {
	table := c.Param("table")

	config, err := h.configService.Get(c.Request.Context(), table)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, config, "Table configuration retrieved successfully")
}

// Save handles POST /api/table_configurations
func (h *TableConfigurationHandler) Save(c *gin.Context) {
	var input services.SaveTableConfigurationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		responses.Fail(c, http.StatusBadRequest, apperrors.KindValidation.Code(), "Invalid request body")
		return
	}

	config, err := h.configService.Save(c.Request.Context(), input)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, config, "Table configuration saved successfully")
}

// Delete handles DELETE /api/table_configurations/:table
func (h *TableConfigurationHandler) Delete(c *gin.Context) {
	table := c.Param("table")

	if err := h.configService.Delete(c.Request.Context(), table); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, nil, "Table configuration deleted successfully")
}
