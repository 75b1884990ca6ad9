package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario (conjunto cerrado).
const (
	TxTypeINITIAL            = "INITIAL"             // creación del inventario
	TxTypeADJUSTMENT         = "ADJUSTMENT"          // ajuste manual (+/-)
	TxTypeRESERVATION        = "RESERVATION"         // aparta disponibilidad para una orden
	TxTypeRESERVATIONRELEASE = "RESERVATION_RELEASE" // devuelve disponibilidad apartada
	TxTypeSALE               = "SALE"                // salida física tras cumplir la reserva
	TxTypeDELETION           = "DELETION"            // baja del inventario (auditoría previa al borrado)
)

// InventoryTransaction es una entrada del kardex: registro inmutable de una
// transición de cantidad. Nunca se edita ni se borra; una corrección es un
// nuevo ADJUSTMENT.
type InventoryTransaction struct {
	ID              string
	CompanyID       string
	InventoryID     string
	ProductID       string
	Type            string
	Quantity        decimal.Decimal // delta con signo aplicado por la transición
	ReferenceNumber string          // único y monótono; lo asigna el generador al persistir
	Date            time.Time
	Notes           string
	CreatedAt       time.Time
}
