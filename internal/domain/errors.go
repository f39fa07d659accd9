package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio centinela (sin dependencias externas).
var (
	ErrUserNotFound  = errors.New("usuario no encontrado")
	ErrUsernameInUse = errors.New("el username ya está registrado")
	ErrEmailInUse    = errors.New("el email ya está registrado")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
)

// ValidationError indica una petición mal formada o contradictoria
// (campos de bodega incorrectos para el tipo, transferencia a la misma bodega,
// cantidad no positiva, producto duplicado en un movimiento).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError construye un ValidationError con formato.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError indica que una entidad referenciada no existe.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Entity, e.ID)
}

// NewNotFoundError construye un NotFoundError para la entidad y el id dados.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// BusinessRuleError indica una violación de regla de negocio con el estado
// suficiente para que el cliente corrija y reintente: stock insuficiente,
// stock que excedería el máximo, inventario duplicado, mínimo mayor al máximo.
type BusinessRuleError struct {
	Message   string
	Product   string // nombre del producto, si aplica
	Warehouse string // nombre de la bodega, si aplica
	Available int    // stock disponible, si aplica
	Requested int    // cantidad solicitada, si aplica
}

func (e *BusinessRuleError) Error() string { return e.Message }

// NewBusinessRuleError construye un BusinessRuleError con formato.
func NewBusinessRuleError(format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

// NewInsufficientStockError construye el error de disponibilidad con
// producto, bodega, disponible y solicitado.
func NewInsufficientStockError(product, warehouse string, available, requested int) *BusinessRuleError {
	return &BusinessRuleError{
		Message: fmt.Sprintf("Stock insuficiente de '%s' en bodega '%s'. Disponible: %d, Requerido: %d",
			product, warehouse, available, requested),
		Product:   product,
		Warehouse: warehouse,
		Available: available,
		Requested: requested,
	}
}

// IsValidation reporta si err es un ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reporta si err es un NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsBusinessRule reporta si err es un BusinessRuleError.
func IsBusinessRule(err error) bool {
	var br *BusinessRuleError
	return errors.As(err, &br)
}
