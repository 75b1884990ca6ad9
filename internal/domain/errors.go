package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrInsufficientInventory = errors.New("inventario insuficiente")
	ErrQuantityInvalid       = errors.New("cantidad inválida")
	ErrBulkDelete            = errors.New("eliminación masiva fallida")
)
