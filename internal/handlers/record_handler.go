package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoapi/internal/apperrors"
	"autoapi/internal/responses"
	"autoapi/internal/services"
)

type RecordHandler struct {
	recordService *services.RecordService
}

func NewRecordHandler(recordService *services.RecordService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
	}
}

// List handles GET /api/:table
func (h *RecordHandler) List(c *gin.Context) {
	table := c.Param("table")
	params := ParseListParams(c.Request.URL.Query())

	result, err := h.recordService.List(c.Request.Context(), table, params)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, result, "Records retrieved successfully")
}

// Get handles GET /api/:table/:id
func (h *RecordHandler) Get(c *gin.Context) {
	table := c.Param("table")
	id := c.Param("id")

	record, err := h.recordService.Get(c.Request.Context(), table, id)
	if err != nil {
		responses.Error(c, err)
		return
	}
	if record == nil {
		responses.Fail(c, http.StatusNotFound, apperrors.KindNotFound.Code(), "Record not found")
		return
	}

	responses.Success(c, http.StatusOK, record, "Record retrieved successfully")
}

// Create handles POST /api/:table
func (h *RecordHandler) Create(c *gin.Context) {
	table := c.Param("table")

	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		responses.Fail(c, http.StatusBadRequest, apperrors.KindValidation.Code(), "Invalid request body")
		return
	}

	record, err := h.recordService.Create(c.Request.Context(), table, data)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusCreated, record, "Record created successfully")
}

// Update handles PUT /api/:table/:id
func (h *RecordHandler) Update(c *gin.Context) {
	table := c.Param("table")
	id := c.Param("id")

	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		responses.Fail(c, http.StatusBadRequest, apperrors.KindValidation.Code(), "Invalid request body")
		return
	}

	record, err := h.recordService.Update(c.Request.Context(), table, id, data)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, record, "Record updated successfully")
}

// Delete handles DELETE /api/:table/:id
func (h *RecordHandler) Delete(c *gin.Context) {
	table := c.Param("table")
	id := c.Param("id")

	if err := h.recordService.Delete(c.Request.Context(), table, id); err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, http.StatusOK, nil, "Record deleted successfully")
}
