package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable
// con pool o tx). La tabla inventories tiene constraint único sobre
// (product_id, company_id).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = "id, company_id, product_id, quantity, available_quantity, created_at, updated_at"

// Create persiste un inventario nuevo. ErrDuplicate si el producto ya tiene
// inventario en la empresa (constraint único).
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventories (id, company_id, product_id, quantity, available_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.ProductID, inv.Quantity, inv.AvailableQuantity, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// Update guarda las cantidades ya transicionadas por el motor. Se asume fila
// bloqueada previamente con GetForUpdate dentro de la misma transacción.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	query := `
		UPDATE inventories
		SET quantity = $1, available_quantity = $2, updated_at = $3
		WHERE company_id = $4 AND id = $5`
	tag, err := r.q.Exec(ctx, query,
		inv.Quantity, inv.AvailableQuantity, inv.UpdatedAt, inv.CompanyID, inv.ID,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el registro de inventario (las entradas de kardex se conservan).
func (r *InventoryRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventories WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un inventario por ID. Devuelve nil, nil si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE company_id = $1 AND id = $2`
	return r.getOne(ctx, query, companyID, id)
}

// GetByProduct obtiene el inventario de un producto. Devuelve nil, nil si no existe.
func (r *InventoryRepo) GetByProduct(ctx context.Context, companyID, productID string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE company_id = $1 AND product_id = $2`
	return r.getOne(ctx, query, companyID, productID)
}

// GetForUpdate obtiene el inventario y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE company_id = $1 AND id = $2 FOR UPDATE`
	return r.getOne(ctx, query, companyID, id)
}

// GetByProductForUpdate igual que GetForUpdate pero buscando por producto.
func (r *InventoryRepo) GetByProductForUpdate(ctx context.Context, companyID, productID string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE company_id = $1 AND product_id = $2 FOR UPDATE`
	return r.getOne(ctx, query, companyID, productID)
}

// ListByProductsForUpdate bloquea y devuelve los inventarios de los productos
// dados. El ORDER BY fija un orden de adquisición de locks estable entre
// transacciones concurrentes (evita deadlocks en lotes que se cruzan).
func (r *InventoryRepo) ListByProductsForUpdate(ctx context.Context, companyID string, productIDs []string) ([]*entity.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventories
		WHERE company_id = $1 AND product_id = ANY($2)
		ORDER BY id
		FOR UPDATE`
	return r.list(ctx, query, companyID, productIDs)
}

// ListByCompany lista todos los inventarios de una empresa (para agregados).
func (r *InventoryRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE company_id = $1 ORDER BY created_at`
	return r.list(ctx, query, companyID)
}

func (r *InventoryRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&inv.ID, &inv.CompanyID, &inv.ProductID, &inv.Quantity, &inv.AvailableQuantity, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

func (r *InventoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.ProductID, &inv.Quantity, &inv.AvailableQuantity, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
