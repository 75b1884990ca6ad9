package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Kardex-api/internal/domain/inventory"
)

func TestBaseReference(t *testing.T) {
	assert.Equal(t, "KDX-00000001", inventory.BaseReference())
}

func TestNextReference_VacioEmiteLaBase(t *testing.T) {
	ref, err := inventory.NextReference("")
	require.NoError(t, err)
	assert.Equal(t, "KDX-00000001", ref)
}

func TestNextReference_IncrementaConRelleno(t *testing.T) {
	ref, err := inventory.NextReference("KDX-00000041")
	require.NoError(t, err)
	assert.Equal(t, "KDX-00000042", ref)
}

// TestNextReference_SecuenciaMonotona emite N referencias seguidas y verifica
// que sean estrictamente crecientes y únicas.
func TestNextReference_SecuenciaMonotona(t *testing.T) {
	seen := make(map[string]bool)
	last := ""
	for i := 0; i < 500; i++ {
		ref, err := inventory.NextReference(last)
		require.NoError(t, err)
		assert.False(t, seen[ref], "referencia repetida: %s", ref)
		if last != "" {
			assert.Greater(t, ref, last, "la secuencia debe ser estrictamente creciente")
		}
		seen[ref] = true
		last = ref
	}
}

// TestNextReference_DesbordaElRelleno cuando el consecutivo supera el ancho del
// relleno, el ancho crece en lugar de truncar.
func TestNextReference_DesbordaElRelleno(t *testing.T) {
	ref, err := inventory.NextReference("KDX-99999999")
	require.NoError(t, err)
	assert.Equal(t, "KDX-100000000", ref)

	ref, err = inventory.NextReference(ref)
	require.NoError(t, err)
	assert.Equal(t, "KDX-100000001", ref)
}

func TestNextReference_SinPorcionNumerica(t *testing.T) {
	_, err := inventory.NextReference("KDX-")
	assert.Error(t, err)
}
