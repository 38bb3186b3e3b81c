package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ems-platform/employee-api/internal/api/metrics"
	"github.com/ems-platform/employee-api/internal/core/ports"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams the employee set as downloadable CSV or XLSX.
type ExportHandler struct {
	service ports.ExportService
}

func NewExportHandler(service ports.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// CSV handles GET /api/export/employees/csv.
//
// @Summary      Export all employees as CSV
// @Tags         export
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      500  {object}  errorResponse
// @Router       /api/export/employees/csv [get]
func (h *ExportHandler) CSV(c echo.Context) error {
	start := time.Now()
	data, err := h.service.ExportCSV(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.ExportDuration.WithLabelValues("csv").Observe(time.Since(start).Seconds())
	metrics.ExportsTotal.WithLabelValues("csv").Inc()

	setAttachment(c, fmt.Sprintf("employees_%d.csv", time.Now().UnixMilli()))
	return c.Blob(http.StatusOK, "text/csv", data)
}

// Excel handles GET /api/export/employees/excel.
//
// @Summary      Export all employees as an XLSX workbook
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      500  {object}  errorResponse
// @Router       /api/export/employees/excel [get]
func (h *ExportHandler) Excel(c echo.Context) error {
	start := time.Now()
	data, err := h.service.ExportExcel(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.ExportDuration.WithLabelValues("excel").Observe(time.Since(start).Seconds())
	metrics.ExportsTotal.WithLabelValues("excel").Inc()

	setAttachment(c, fmt.Sprintf("employees_%d.xlsx", time.Now().UnixMilli()))
	return c.Blob(http.StatusOK, xlsxMIME, data)
}

func setAttachment(c echo.Context, filename string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
