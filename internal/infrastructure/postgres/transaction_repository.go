package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo adaptador del kardex sobre PostgreSQL (usable con
// pool o tx). La tabla inventory_transactions es de solo inserción: constraint
// único sobre reference_number e índice por (product_id, date).
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create inserta una entrada de kardex. ErrDuplicate si la referencia ya
// existe (señal de emisión no serializada; no debería pasar).
func (r *InventoryTransactionRepo) Create(ctx context.Context, tx *entity.InventoryTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_transactions (id, company_id, inventory_id, product_id, type, quantity, reference_number, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	notes := (*string)(nil)
	if tx.Notes != "" {
		notes = &tx.Notes
	}
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.CompanyID, tx.InventoryID, tx.ProductID, tx.Type,
		tx.Quantity, tx.ReferenceNumber, tx.Date, notes, tx.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// ListByInventory historial de un inventario ordenado por fecha y referencia
// descendentes. Las entradas DELETION sobreviven al borrado del inventario,
// por eso se filtra por inventory_id y no con un JOIN.
func (r *InventoryTransactionRepo) ListByInventory(ctx context.Context, companyID, inventoryID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, company_id, inventory_id, product_id, type, quantity, reference_number, date, notes, created_at
		FROM inventory_transactions
		WHERE company_id = $1 AND inventory_id = $2
		ORDER BY date DESC, reference_number DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, inventoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var tx entity.InventoryTransaction
		var notes *string
		if err := rows.Scan(&tx.ID, &tx.CompanyID, &tx.InventoryID, &tx.ProductID, &tx.Type,
			&tx.Quantity, &tx.ReferenceNumber, &tx.Date, &notes, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if notes != nil {
			tx.Notes = *notes
		}
		list = append(list, &tx)
	}
	return list, rows.Err()
}

// CountByInventory total de entradas del kardex de un inventario.
func (r *InventoryTransactionRepo) CountByInventory(ctx context.Context, companyID, inventoryID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_transactions WHERE company_id = $1 AND inventory_id = $2`,
		companyID, inventoryID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return total, nil
}
