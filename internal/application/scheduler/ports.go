package scheduler

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner variante del runner transaccional con el repositorio de órdenes
// incluido: la liberación de una reserva vencida escribe inventarios, kardex y
// orden cancelada en una sola transacción.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		refRepo repository.ReferenceRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
