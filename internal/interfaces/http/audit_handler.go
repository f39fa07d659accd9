package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logitrack/logitrack-api/internal/application/audit"
	"github.com/logitrack/logitrack-api/internal/application/dto"
	"github.com/logitrack/logitrack-api/internal/domain/entity"
)

// AuditHandler consultas del historial de auditoría (solo admin).
type AuditHandler struct {
	uc *audit.QueryUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.QueryUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Consultar historial de auditoría
// @Description  Filtros excluyentes por query: entity (+entity_id), user_id,
// @Description  operation o rango from/to. Sin filtros devuelve los últimos n.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entity     query  string  false  "Tipo de entidad"
// @Param        entity_id  query  string  false  "ID de la entidad (con entity)"
// @Param        user_id    query  string  false  "Usuario que originó"
// @Param        operation  query  string  false  "INSERT | UPDATE | DELETE"
// @Param        from       query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        to         query  string  false  "Fecha final (YYYY-MM-DD)"
// @Param        n          query  int     false  "Cantidad sin filtros"  default(20)
// @Success      200  {array}   dto.AuditRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	ctx := c.Context()
	var (
		out []dto.AuditRecordResponse
		err error
	)
	switch {
	case c.Query("entity") != "" && c.Query("entity_id") != "":
		out, err = h.uc.ByEntityAndID(ctx, c.Query("entity"), c.Query("entity_id"))
	case c.Query("entity") != "":
		out, err = h.uc.ByEntity(ctx, c.Query("entity"))
	case c.Query("user_id") != "":
		out, err = h.uc.ByUser(ctx, c.Query("user_id"))
	case c.Query("operation") != "":
		out, err = h.uc.ByOperation(ctx, entity.AuditOperation(c.Query("operation")))
	case c.Query("from") != "" || c.Query("to") != "":
		from, to, perr := parseDateRange(c.Query("from"), c.Query("to"))
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas; formato YYYY-MM-DD"})
		}
		out, err = h.uc.ByDates(ctx, from, to)
	default:
		out, err = h.uc.Latest(ctx, c.QueryInt("n", 20))
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
