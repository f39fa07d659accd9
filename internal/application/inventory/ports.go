package inventory

import (
	"context"

	"github.com/logitrack/logitrack-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción.
type TxRepos struct {
	Movements  repository.MovementRepository
	Ledger     repository.LedgerRepository
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Users      repository.UserRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la unidad de atomicidad del motor: la
// escritura del movimiento y todas las mutaciones del ledger comparten
// Commit o Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
