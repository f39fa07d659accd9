package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/logitrack/logitrack-api/internal/application/dto"
	"github.com/logitrack/logitrack-api/internal/application/inventory"
)

// MovementHandler maneja los movimientos de inventario (protegido).
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento de inventario
// @Description  INBOUND requiere bodega destino, OUTBOUND bodega origen y
// @Description  TRANSFER ambas (distintas). El movimiento y el inventario se
// @Description  actualizan de forma atómica.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento con renglones"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El usuario autenticado es el autor del movimiento.
	in.UserID = GetUserID(c)
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Description  Elimina el registro histórico. El inventario NO se revierte.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Filtros excluyentes por query: type, warehouse_id, user_id,
// @Description  o rango from/to (YYYY-MM-DD). Sin filtros lista paginado.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type          query  string  false  "INBOUND | OUTBOUND | TRANSFER"
// @Param        warehouse_id  query  string  false  "Bodega origen o destino"
// @Param        user_id       query  string  false  "Usuario que registró"
// @Param        from          query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        to            query  string  false  "Fecha final (YYYY-MM-DD)"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	ctx := c.Context()
	var (
		out []dto.MovementResponse
		err error
	)
	switch {
	case c.Query("type") != "":
		out, err = h.uc.ListByType(ctx, c.Query("type"), page.Limit, page.Offset)
	case c.Query("warehouse_id") != "":
		out, err = h.uc.ListByWarehouse(ctx, c.Query("warehouse_id"), page.Limit, page.Offset)
	case c.Query("user_id") != "":
		out, err = h.uc.ListByUser(ctx, c.Query("user_id"), page.Limit, page.Offset)
	case c.Query("from") != "" || c.Query("to") != "":
		var from, to time.Time
		from, to, err = parseDateRange(c.Query("from"), c.Query("to"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas; formato YYYY-MM-DD"})
		}
		out, err = h.uc.ListByDates(ctx, from, to, page.Limit, page.Offset)
	default:
		out, err = h.uc.List(ctx, page.Limit, page.Offset)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// InboundByWarehouse godoc
// @Summary      Entradas recibidas por una bodega
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path   string  true   "Bodega destino"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/warehouse/{warehouse_id}/inbound [get]
func (h *MovementHandler) InboundByWarehouse(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.ListInboundByWarehouse(c.Context(), c.Params("warehouse_id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// OutboundByWarehouse godoc
// @Summary      Salidas despachadas desde una bodega
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path   string  true   "Bodega origen"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/warehouse/{warehouse_id}/outbound [get]
func (h *MovementHandler) OutboundByWarehouse(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.ListOutboundByWarehouse(c.Context(), c.Params("warehouse_id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TransfersFrom godoc
// @Summary      Traslados que salen de una bodega
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path   string  true   "Bodega origen"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/transfers-from/{warehouse_id} [get]
func (h *MovementHandler) TransfersFrom(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.ListTransfersFromWarehouse(c.Context(), c.Params("warehouse_id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TransfersTo godoc
// @Summary      Traslados que llegan a una bodega
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path   string  true   "Bodega destino"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/transfers-to/{warehouse_id} [get]
func (h *MovementHandler) TransfersTo(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.ListTransfersToWarehouse(c.Context(), c.Params("warehouse_id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// pageFromQuery lee limit/offset con los defaults de paginación.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	var page dto.PageRequest
	page.Limit = c.QueryInt("limit", 20)
	page.Offset = c.QueryInt("offset", 0)
	page.DefaultPage()
	return page
}

// Latest godoc
// @Summary      Últimos movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        n  query  int  false  "Cantidad"  default(10)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/latest [get]
func (h *MovementHandler) Latest(c *fiber.Ctx) error {
	out, err := h.uc.ListLatest(c.Context(), c.QueryInt("n", 10))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// parseDateRange interpreta from/to como YYYY-MM-DD; to vacío = ahora,
// from vacío = época cero. El día final es inclusivo.
func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			return from, to, err
		}
	}
	if toStr == "" {
		to = time.Now()
	} else {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			return from, to, err
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}
