package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logitrack/logitrack-api/internal/application/report"
)

// ReportHandler maneja los reportes agregados (protegido).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen general de inventario
// @Description  Stock por bodega con valorización, top de productos movidos,
// @Description  bajo stock según umbral y agregado por categoría.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de bajo stock; omitir usa el configurado"
// @Success      200  {object}  dto.ReportSummary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), c.QueryInt("threshold", -1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SummaryPDF godoc
// @Summary      Resumen general en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        threshold  query  int  false  "Umbral de bajo stock"
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reports/summary/pdf [get]
func (h *ReportHandler) SummaryPDF(c *fiber.Ctx) error {
	data, err := h.uc.SummaryPDF(c.Context(), c.QueryInt("threshold", -1))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resumen-inventario.pdf"`)
	return c.Send(data)
}

// StockByWarehouse godoc
// @Summary      Stock y valorización por bodega
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseStockDTO
// @Router       /api/reports/stock-by-warehouse [get]
func (h *ReportHandler) StockByWarehouse(c *fiber.Ctx) error {
	out, err := h.uc.StockByWarehouse(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopMoved godoc
// @Summary      Productos más movidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad"  default(10)
// @Success      200  {array}  dto.MovedProductDTO
// @Router       /api/reports/top-moved [get]
func (h *ReportHandler) TopMoved(c *fiber.Ctx) error {
	out, err := h.uc.TopMoved(c.Context(), c.QueryInt("limit", 10))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByCategory godoc
// @Summary      Resumen del catálogo por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategorySummaryDTO
// @Router       /api/reports/by-category [get]
func (h *ReportHandler) ByCategory(c *fiber.Ctx) error {
	out, err := h.uc.ByCategory(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
