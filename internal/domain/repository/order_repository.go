package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// OrderRepository puerto sobre el agregado de órdenes (colaborador externo).
// El scheduler solo necesita encontrar reservas vencidas y guardar la orden
// cancelada; el resto del ciclo de vida de la orden no pasa por aquí.
type OrderRepository interface {
	// FindExpiredReservations devuelve órdenes con status RESERVED cuya fecha
	// límite de reserva ya pasó. Las CANCELLED quedan fuera por el filtro, lo
	// que hace idempotente cada tick del scheduler.
	FindExpiredReservations(ctx context.Context, now time.Time, limit int) ([]*entity.Order, error)
	// GetForUpdate relee la orden con sus líneas bloqueando la fila; devuelve
	// nil si ya no existe. Permite revalidar el status dentro de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	Save(ctx context.Context, order *entity.Order) error
}
