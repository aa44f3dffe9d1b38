package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kartikp36/github-org-stats/internal/models"
	"github.com/kartikp36/github-org-stats/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler turns an already-fetched result posted by the client
// into a downloadable file. No GitHub interaction happens here.
type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// ExportCSV handles POST /api/export/csv
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	data, ok := h.bindStatsData(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="github-stats.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(h.exportService.CSV(data.Stats)))
}

// ExportJSON handles POST /api/export/json
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	data, ok := h.bindStatsData(c)
	if !ok {
		return
	}

	out, err := h.exportService.JSON(data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to render JSON export"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="github-stats.json"`)
	c.Data(http.StatusOK, "application/json", out)
}

// ExportExcel handles POST /api/export/xlsx
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	data, ok := h.bindStatsData(c)
	if !ok {
		return
	}

	buf, err := h.exportService.Excel(data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to render Excel export"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="github-stats.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) bindStatsData(c *gin.Context) (*models.StatsData, bool) {
	var data models.StatsData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid export payload"})
		return nil, false
	}
	return &data, true
}
