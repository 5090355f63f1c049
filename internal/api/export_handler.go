package api

import (
	"fmt"
	"net/http"
	"time"

	"evolution/fitness-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler holds the export service dependency.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportDashboardCSV streams the full dashboard snapshot as a CSV download.
func (h *ExportHandler) ExportDashboardCSV(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	csv, err := h.exportService.DashboardCSV(c.Request.Context(), userID, timeframeFromQuery(c))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to build CSV export.")
		return
	}

	filename := fmt.Sprintf("relatorio_evolution_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// ExportDashboardReport renders the printable HTML report.
func (h *ExportHandler) ExportDashboardReport(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	report, err := h.exportService.DashboardReport(c.Request.Context(), userID, timeframeFromQuery(c))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to build report.")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(report))
}
