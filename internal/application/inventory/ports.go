package inventory

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que registro de inventario, entrada
// de kardex y contador de referencias se confirmen (o reviertan) juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		refRepo repository.ReferenceRepository,
	) error) error
}
