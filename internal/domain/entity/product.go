package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product vista de solo lectura del catálogo. El CRUD de productos vive en otro
// servicio; aquí solo se consulta el nivel mínimo para clasificar el stock.
type Product struct {
	ID                string
	CompanyID         string
	SKU               string
	Name              string
	MinimumStockLevel decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
