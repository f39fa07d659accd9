// Package pdf implementa la representación PDF del resumen de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Stock por bodega (unidades + valorización)          │
//	│  TABLA: Top productos movidos                               │
//	│  TABLA: Bajo stock (según umbral)                           │
//	│  TABLA: Resumen por categoría                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/logitrack/logitrack-api/internal/application/dto"
	"github.com/logitrack/logitrack-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.SummaryPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

var _ report.SummaryPDFGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateSummaryPDF genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSummaryPDF(_ context.Context, summary *dto.ReportSummary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("STOCK POR BODEGA"))
	m.AddRows(tableHeader("Bodega", "Unidades", "Valorización"))
	for _, w := range summary.StockByWarehouse {
		m.AddRows(tableRow(w.WarehouseName, strconv.Itoa(w.TotalUnits), "$"+w.TotalValue.StringFixed(2)))
	}

	m.AddRows(sectionTitle("TOP PRODUCTOS MOVIDOS"))
	m.AddRows(tableHeader("Producto", "Total movido", ""))
	for _, p := range summary.TopMoved {
		m.AddRows(tableRow(p.ProductName, strconv.Itoa(p.TotalMoved), ""))
	}

	m.AddRows(sectionTitle(fmt.Sprintf("BAJO STOCK (umbral: %d)", summary.Threshold)))
	m.AddRows(tableHeader("Producto", "Categoría", "Stock"))
	for _, p := range summary.LowStock {
		m.AddRows(tableRow(p.Name, p.Category, strconv.Itoa(p.Stock)))
	}

	m.AddRows(sectionTitle("RESUMEN POR CATEGORÍA"))
	m.AddRows(tableHeader("Categoría", "Productos", "Stock total"))
	for _, c := range summary.ByCategory {
		m.AddRows(tableRow(c.Category, strconv.Itoa(c.Products), strconv.Itoa(c.TotalStock)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("RESUMEN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3,
		}),
	))
}

func tableHeader(a, b, c string) core.Row {
	h := func(label string, size int, al align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: al, Top: 1,
		}))
	}
	return row.New(6).Add(
		h(a, 6, align.Left),
		h(b, 3, align.Right),
		h(c, 3, align.Right),
	)
}

func tableRow(a, b, c string) core.Row {
	cell := func(v string, size int, al align.Type) core.Col {
		return col.New(size).Add(text.New(v, props.Text{
			Size: 8, Align: al, Top: 1, Color: colorGray,
		}))
	}
	return row.New(5).Add(
		cell(a, 6, align.Left),
		cell(b, 3, align.Right),
		cell(c, 3, align.Right),
	)
}
