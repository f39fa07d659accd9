package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logitrack/logitrack-api/internal/application/dto"
	"github.com/logitrack/logitrack-api/internal/application/inventory"
)

// LedgerHandler maneja el inventario por bodega (protegido).
type LedgerHandler struct {
	uc *inventory.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *inventory.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Create godoc
// @Summary      Aprovisionar inventario
// @Description  Crea la fila (bodega, producto) con stock inicial y umbrales.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLedgerEntryRequest  true  "Fila de inventario"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *LedgerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLedgerEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar fila de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la fila"
// @Param        body  body  dto.UpdateLedgerEntryRequest  true  "Stock y umbrales"
// @Success      200   {object}  dto.LedgerEntryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *LedgerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLedgerEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajuste directo de stock
// @Description  Suma (positivo) o resta (negativo) sobre la fila existente,
// @Description  respetando los límites 0..max.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        warehouse_id  path  string  true  "Bodega"
// @Param        product_id    path  string  true  "Producto"
// @Param        body          body  dto.AdjustStockRequest  true  "Cantidad con signo"
// @Success      200  {object}  dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{warehouse_id}/{product_id}/adjust [post]
func (h *LedgerHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AdjustStock(c.Context(), GetUserID(c), c.Params("warehouse_id"), c.Params("product_id"), in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar fila de inventario
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  string  true  "ID de la fila"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *LedgerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar inventario
// @Description  Filtros por query: warehouse_id o product_id; sin filtros,
// @Description  listado paginado completo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        product_id    query  string  false  "Producto"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/inventory [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	ctx := c.Context()
	var (
		out []dto.LedgerEntryResponse
		err error
	)
	switch {
	case c.Query("warehouse_id") != "":
		out, err = h.uc.ByWarehouse(ctx, c.Query("warehouse_id"))
	case c.Query("product_id") != "":
		out, err = h.uc.ByProduct(ctx, c.Query("product_id"))
	default:
		var page dto.PageRequest
		page.Limit = c.QueryInt("limit", 20)
		page.Offset = c.QueryInt("offset", 0)
		page.DefaultPage()
		out, err = h.uc.List(ctx, page.Limit, page.Offset)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener fila de inventario por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la fila"
// @Success      200  {object}  dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *LedgerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByPair godoc
// @Summary      Inventario de un producto en una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path  string  true  "Bodega"
// @Param        product_id    path  string  true  "Producto"
// @Success      200  {object}  dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{warehouse_id}/{product_id} [get]
func (h *LedgerHandler) GetByPair(c *fiber.Ctx) error {
	out, err := h.uc.GetByPair(c.Context(), c.Params("warehouse_id"), c.Params("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Filas por debajo del mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega; vacío = todas"
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/inventory/low-stock [get]
func (h *LedgerHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TotalStock godoc
// @Summary      Stock total de un producto entre bodegas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "Producto"
// @Success      200  {object}  dto.TotalStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/total/{product_id} [get]
func (h *LedgerHandler) TotalStock(c *fiber.Ctx) error {
	out, err := h.uc.TotalStock(c.Context(), c.Params("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
