package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo vista del agregado de órdenes que necesita el scheduler: reservas
// vencidas y guardado de la orden cancelada (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// FindExpiredReservations órdenes RESERVED con la fecha límite ya vencida, con
// sus líneas. El filtro por status excluye las CANCELLED: relanzar el tick es
// seguro aunque uno anterior haya fallado a medias.
func (r *OrderRepo) FindExpiredReservations(ctx context.Context, now time.Time, limit int) ([]*entity.Order, error) {
	query := `
		SELECT id, company_id, status, reservation_expires_at, notes, created_at, updated_at
		FROM orders
		WHERE status = $1 AND reservation_expires_at < $2
		ORDER BY reservation_expires_at
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, entity.OrderStatusRESERVED, now, limit)
	if err != nil {
		return nil, fmt.Errorf("find expired reservations: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var o entity.Order
		var notes *string
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.Status, &o.ReservationExpiresAt, &notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if notes != nil {
			o.Notes = *notes
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		items, err := r.listItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return orders, nil
}

// GetForUpdate relee la orden con sus líneas bloqueando la fila. Devuelve nil
// si la orden ya no existe.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, company_id, status, reservation_expires_at, notes, created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE`
	var o entity.Order
	var notes *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CompanyID, &o.Status, &o.ReservationExpiresAt, &notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	if notes != nil {
		o.Notes = *notes
	}
	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// Save actualiza estado, fecha límite y notas de la orden. Las líneas no se
// tocan desde este módulo.
func (r *OrderRepo) Save(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders
		SET status = $1, reservation_expires_at = $2, notes = $3, updated_at = $4
		WHERE id = $5`
	notes := (*string)(nil)
	if order.Notes != "" {
		notes = &order.Notes
	}
	tag, err := r.q.Exec(ctx, query, order.Status, order.ReservationExpiresAt, notes, order.UpdatedAt, order.ID)
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save order: orden %s no encontrada", order.ID)
	}
	return nil
}

func (r *OrderRepo) listItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, product_id, quantity FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
