package reflector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct{}

func TestTypeInfoOf(t *testing.T) {
	ti := TypeInfoOf(&sample{})
	require.Equal(t, "sample", ti.Short)
	require.Contains(t, ti.Name, "internal/reflector.sample")
}

func TestTypeInfoFor(t *testing.T) {
	ti := TypeInfoFor[sample]()
	require.Equal(t, "sample", ti.Short)
}

func TestTypeInfoForType_cached(t *testing.T) {
	a := TypeInfoOf(sample{})
	b := TypeInfoOf(sample{})
	require.Equal(t, a, b)
}
