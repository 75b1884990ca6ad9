package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryDTO respuesta con el estado de un inventario, incluyendo la
// clasificación derivada de salud de stock.
type InventoryDTO struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	Status            string          `json:"status"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TransactionDTO una entrada del kardex en el historial.
type TransactionDTO struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	ReferenceNumber string          `json:"reference_number"`
	Date            time.Time       `json:"date"`
	Notes           string          `json:"notes,omitempty"`
}

// TransactionPage historial paginado de un inventario, ordenado por fecha y
// referencia descendentes.
type TransactionPage struct {
	Items []TransactionDTO `json:"items"`
	Page  PageResponse     `json:"page"`
}

// InventoryStatsDTO agregados por empresa: conteo por estado de salud de stock
// y totales de cantidades. Dato derivado, nunca fuente de verdad.
type InventoryStatsDTO struct {
	TotalProducts  int             `json:"total_products"`
	OutOfStock     int             `json:"out_of_stock"`
	LowStock       int             `json:"low_stock"`
	Healthy        int             `json:"healthy"`
	Overstock      int             `json:"overstock"`
	TotalQuantity  decimal.Decimal `json:"total_quantity"`
	TotalAvailable decimal.Decimal `json:"total_available"`
}
