package report

import (
	"context"

	"github.com/logitrack/logitrack-api/internal/application/dto"
	"github.com/logitrack/logitrack-api/internal/domain"
	"github.com/logitrack/logitrack-api/internal/domain/entity"
	"github.com/logitrack/logitrack-api/internal/domain/repository"
)

// Config umbrales para el reporte de bajo stock.
type Config struct {
	DefaultThreshold int
	MaxThreshold     int
}

// SummaryPDFGenerator genera la representación PDF del resumen de inventario.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, summary *dto.ReportSummary) ([]byte, error)
}

// ReportUseCase consultas agregadas de solo lectura sobre el inventario.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
	pdfGen      SummaryPDFGenerator
	cfg         Config
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(reportRepo repository.ReportRepository, productRepo repository.ProductRepository, pdfGen SummaryPDFGenerator, cfg Config) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, productRepo: productRepo, pdfGen: pdfGen, cfg: cfg}
}

// resolveThreshold aplica el valor por defecto y valida el rango permitido.
// Un threshold negativo significa "no especificado".
func (uc *ReportUseCase) resolveThreshold(threshold int) (int, error) {
	if threshold < 0 {
		threshold = uc.cfg.DefaultThreshold
	}
	if threshold > uc.cfg.MaxThreshold {
		return 0, domain.NewBusinessRuleError(
			"el umbral de bajo stock debe estar entre 0 y %d; recibido: %d",
			uc.cfg.MaxThreshold, threshold)
	}
	return threshold, nil
}

// Summary arma el resumen general: stock por bodega con valorización, top de
// productos movidos, bajo stock según umbral y agregado por categoría.
func (uc *ReportUseCase) Summary(ctx context.Context, threshold int) (*dto.ReportSummary, error) {
	threshold, err := uc.resolveThreshold(threshold)
	if err != nil {
		return nil, err
	}
	byWarehouse, err := uc.reportRepo.StockByWarehouse(ctx)
	if err != nil {
		return nil, err
	}
	topMoved, err := uc.reportRepo.TopMovedProducts(ctx, 10)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.productRepo.ListStockBelow(ctx, threshold)
	if err != nil {
		return nil, err
	}
	byCategory, err := uc.reportRepo.SummaryByCategory(ctx)
	if err != nil {
		return nil, err
	}

	summary := &dto.ReportSummary{
		StockByWarehouse: make([]dto.WarehouseStockDTO, 0, len(byWarehouse)),
		TopMoved:         make([]dto.MovedProductDTO, 0, len(topMoved)),
		LowStock:         make([]dto.ProductResponse, 0, len(lowStock)),
		ByCategory:       make([]dto.CategorySummaryDTO, 0, len(byCategory)),
		Threshold:        threshold,
	}
	for _, w := range byWarehouse {
		summary.StockByWarehouse = append(summary.StockByWarehouse, dto.WarehouseStockDTO{
			WarehouseID:   w.WarehouseID,
			WarehouseName: w.WarehouseName,
			TotalUnits:    w.TotalUnits,
			TotalValue:    w.TotalValue,
		})
	}
	for _, p := range topMoved {
		summary.TopMoved = append(summary.TopMoved, dto.MovedProductDTO{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			TotalMoved:  p.TotalMoved,
		})
	}
	for _, p := range lowStock {
		summary.LowStock = append(summary.LowStock, *toProductDTO(p))
	}
	for _, c := range byCategory {
		summary.ByCategory = append(summary.ByCategory, dto.CategorySummaryDTO{
			Category:   c.Category,
			Products:   c.Products,
			TotalStock: c.TotalStock,
		})
	}
	return summary, nil
}

// SummaryPDF genera el resumen y lo renderiza como PDF.
func (uc *ReportUseCase) SummaryPDF(ctx context.Context, threshold int) ([]byte, error) {
	summary, err := uc.Summary(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateSummaryPDF(ctx, summary)
}

// StockByWarehouse stock agregado y valorización por bodega.
func (uc *ReportUseCase) StockByWarehouse(ctx context.Context) ([]dto.WarehouseStockDTO, error) {
	rows, err := uc.reportRepo.StockByWarehouse(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseStockDTO, 0, len(rows))
	for _, w := range rows {
		out = append(out, dto.WarehouseStockDTO{
			WarehouseID:   w.WarehouseID,
			WarehouseName: w.WarehouseName,
			TotalUnits:    w.TotalUnits,
			TotalValue:    w.TotalValue,
		})
	}
	return out, nil
}

// TopMoved productos con mayor cantidad total movida.
func (uc *ReportUseCase) TopMoved(ctx context.Context, limit int) ([]dto.MovedProductDTO, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := uc.reportRepo.TopMovedProducts(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovedProductDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, dto.MovedProductDTO{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			TotalMoved:  p.TotalMoved,
		})
	}
	return out, nil
}

func toProductDTO(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ByCategory agregado del catálogo por categoría.
func (uc *ReportUseCase) ByCategory(ctx context.Context) ([]dto.CategorySummaryDTO, error) {
	rows, err := uc.reportRepo.SummaryByCategory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategorySummaryDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, dto.CategorySummaryDTO{
			Category:   c.Category,
			Products:   c.Products,
			TotalStock: c.TotalStock,
		})
	}
	return out, nil
}
