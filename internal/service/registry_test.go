package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/you/go-clonar-search/internal/providers"
)

func TestRegistry_RegistrationOrderPreserved(t *testing.T) {
	r := newProviderRegistry()
	r.register(&ProviderMock{name: "a", fieldType: providers.FieldProduct})
	r.register(&ProviderMock{name: "b", fieldType: providers.FieldProduct})
	r.register(&ProviderMock{name: "c", fieldType: providers.FieldProduct})

	got := r.providersFor(providers.FieldProduct)
	require.Len(t, got, 3)
	require.Equal(t, "a", got[0].Name())
	require.Equal(t, "b", got[1].Name())
	require.Equal(t, "c", got[2].Name())
}

func TestRegistry_PartitionedByFieldType(t *testing.T) {
	r := newProviderRegistry()
	r.register(&ProviderMock{name: "shop", fieldType: providers.FieldProduct})
	r.register(&ProviderMock{name: "stay", fieldType: providers.FieldHotel})

	require.Len(t, r.providersFor(providers.FieldProduct), 1)
	require.Len(t, r.providersFor(providers.FieldHotel), 1)
	require.Empty(t, r.providersFor(providers.FieldFlight))
}

func TestRegistry_DuplicateNamesKept(t *testing.T) {
	r := newProviderRegistry()
	r.register(&ProviderMock{name: "dup", fieldType: providers.FieldProduct})
	r.register(&ProviderMock{name: "dup", fieldType: providers.FieldProduct})

	require.Len(t, r.providersFor(providers.FieldProduct), 2)
}

func TestRegistry_ReturnsCopy(t *testing.T) {
	r := newProviderRegistry()
	r.register(&ProviderMock{name: "a", fieldType: providers.FieldProduct})

	got := r.providersFor(providers.FieldProduct)
	got[0] = &ProviderMock{name: "mutated", fieldType: providers.FieldProduct}

	require.Equal(t, "a", r.providersFor(providers.FieldProduct)[0].Name())
}
