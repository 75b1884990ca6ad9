package inventory

import (
	"fmt"
	"strconv"
)

// Formato de los números de referencia del kardex: prefijo fijo + consecutivo
// con relleno de ceros. El consecutivo es global (no por empresa): la tabla de
// transacciones tiene constraint único sobre reference_number.
const (
	referencePrefix = "KDX-"
	referencePad    = 8
)

// BaseReference primera referencia emitida cuando el kardex está vacío.
func BaseReference() string {
	return fmt.Sprintf("%s%0*d", referencePrefix, referencePad, 1)
}

// NextReference calcula la referencia siguiente a partir de la última emitida:
// extrae la porción numérica final, incrementa y vuelve a rellenar con ceros.
// Si el consecutivo desborda el ancho del relleno, el ancho crece (el orden
// lexicográfico se mantiene dentro de cada ancho; la unicidad siempre).
//
// Esta función es pura; la serialización de la emisión (dos llamadores no deben
// leer la misma "última" referencia) es responsabilidad del ReferenceRepository,
// que bloquea la fila del contador dentro de la transacción de escritura.
func NextReference(last string) (string, error) {
	if last == "" {
		return BaseReference(), nil
	}
	digits := trailingDigits(last)
	if digits == "" {
		return "", fmt.Errorf("referencia sin porción numérica: %q", last)
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return "", fmt.Errorf("parsear consecutivo de %q: %w", last, err)
	}
	width := len(digits)
	if width < referencePad {
		width = referencePad
	}
	return fmt.Sprintf("%s%0*d", referencePrefix, width, n+1), nil
}

// trailingDigits devuelve el sufijo numérico de s ("KDX-00000042" -> "00000042").
func trailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[i:]
}
